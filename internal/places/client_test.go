package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Search(t *testing.T) {
	t.Run("ReturnsResults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/textsearch/json", r.URL.Path)
			assert.Equal(t, "city hall lisbon", r.URL.Query().Get("query"))
			w.Write([]byte(`{"status":"OK","results":[{"place_id":"p1","name":"City Hall","formatted_address":"Lisbon"}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		results, err := client.Search(context.Background(), "city hall lisbon", "", "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "p1", results[0].PlaceID)
	})

	t.Run("ZeroResultsIsNotAnError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		results, err := client.Search(context.Background(), "nowhere", "", "", 0)

		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("APIStatusError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "bad-key")
		_, err := client.Search(context.Background(), "anything", "", "", 0)
		assert.Error(t, err)
	})

	t.Run("RetriesOnServerError", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"status":"OK","results":[]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		_, err := client.Search(context.Background(), "retry", "", "", 0)

		assert.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestClient_Details(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("place_id"))
		w.Write([]byte(`{"status":"OK","result":{"place_id":"p1","name":"City Hall","rating":4.2}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	place, err := client.Details(context.Background(), "p1")

	assert.NoError(t, err)
	assert.Equal(t, "City Hall", place.Name)
	assert.Equal(t, 4.2, place.Rating)
}

func TestClient_Enabled(t *testing.T) {
	assert.True(t, NewClient("http://example", "key").Enabled())
	assert.False(t, NewClient("http://example", "").Enabled())
}
