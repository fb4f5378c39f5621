package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Google allows generous quotas but bursts get throttled; stay polite.
	rateLimit = 5 // requests per second
	rateBurst = 10

	maxRetries   = 3
	initialDelay = 500 * time.Millisecond
)

// Client is a thin wrapper around the Google Places web service used to
// enrich the service catalog with real-world place data.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new Places API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Enabled reports whether the client is configured with an API key.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Place is a single place returned by search or details lookup
type Place struct {
	PlaceID   string   `json:"place_id"`
	Name      string   `json:"name"`
	Address   string   `json:"formatted_address"`
	Types     []string `json:"types"`
	Rating    float64  `json:"rating"`
	UserTotal int      `json:"user_ratings_total"`
}

type searchResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []Place `json:"results"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       Place  `json:"result"`
}

// Search runs a text search for places, optionally constrained to a place
// type (e.g. "local_government_office") and a "lat,lng" location with radius
// in meters.
func (c *Client) Search(ctx context.Context, query, placeType, location string, radius int) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	if placeType != "" {
		params.Set("type", placeType)
	}
	if location != "" && radius > 0 {
		params.Set("location", location)
		params.Set("radius", strconv.Itoa(radius))
	}

	var resp searchResponse
	if err := c.get(ctx, "/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places search failed: %s %s", resp.Status, resp.ErrorMessage)
	}

	return resp.Results, nil
}

// Details fetches a single place by its place_id.
func (c *Client) Details(ctx context.Context, placeID string) (*Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.apiKey)
	params.Set("fields", "place_id,name,formatted_address,types,rating,user_ratings_total")

	var resp detailsResponse
	if err := c.get(ctx, "/details/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("places details failed: %s %s", resp.Status, resp.ErrorMessage)
	}

	return &resp.Result, nil
}

// get performs a rate-limited GET with bounded retries on 5xx responses
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			if resp.StatusCode < 500 {
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return fmt.Errorf("places API returned status %d", resp.StatusCode)
				}
				return json.NewDecoder(resp.Body).Decode(out)
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("places API returned status %d", resp.StatusCode)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}

	return lastErr
}
