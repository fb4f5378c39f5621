package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/handler"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockEvaluationService struct {
	mock.Mock
}

func (m *MockEvaluationService) Submit(authorID string, authorIsAdmin bool, req dto.CreateEvaluationDTO) (*dto.EvaluationResponse, error) {
	args := m.Called(authorID, authorIsAdmin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EvaluationResponse), args.Error(1)
}

func (m *MockEvaluationService) SubmitDetailed(authorID string, authorIsAdmin bool, req dto.CreateDetailedEvaluationDTO) (*dto.EvaluationResponse, error) {
	args := m.Called(authorID, authorIsAdmin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EvaluationResponse), args.Error(1)
}

func (m *MockEvaluationService) Update(evaluationID, callerID string, req dto.UpdateEvaluationDTO) (*dto.EvaluationResponse, error) {
	args := m.Called(evaluationID, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EvaluationResponse), args.Error(1)
}

func (m *MockEvaluationService) Delete(evaluationID, callerID string, callerIsAdmin bool) error {
	args := m.Called(evaluationID, callerID, callerIsAdmin)
	return args.Error(0)
}

func (m *MockEvaluationService) GetByID(id string) (*dto.EvaluationResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EvaluationResponse), args.Error(1)
}

func (m *MockEvaluationService) List(query dto.ListEvaluationsQuery) (*dto.Paginated[dto.EvaluationResponse], error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.EvaluationResponse]), args.Error(1)
}

func (m *MockEvaluationService) Stats(serviceID string) (*dto.EvaluationStatsResponse, error) {
	args := m.Called(serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EvaluationStatsResponse), args.Error(1)
}

// --- SETUP ---

func mockAuthMiddleware(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", "testuser")
		c.Set("role", role)
		c.Next()
	}
}

func setupEvaluationRouter(mockService *MockEvaluationService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewEvaluationHandler(mockService)

	api := r.Group("/api")
	protected := api.Group("")
	protected.Use(mockAuthMiddleware(userID, role))
	admin := protected.Group("/admin")
	h.RegisterRoutes(api, protected, admin)
	return r
}

// --- TESTS ---

func TestEvaluationHandler_Submit(t *testing.T) {
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"
	userID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	t.Run("Created", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleUser)

		mockService.On("Submit", userID, false, mock.AnythingOfType("dto.CreateEvaluationDTO")).
			Return(&dto.EvaluationResponse{
				ID:        "eval-1",
				UserID:    userID,
				ServiceID: serviceID,
				Score:     8.0,
				Status:    models.EvaluationPending,
			}, nil).Once()

		body, _ := json.Marshal(gin.H{"service_id": serviceID, "score": 8.0, "comment": "fast"})
		req, _ := http.NewRequest(http.MethodPost, "/api/evaluations", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.EvaluationResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, models.EvaluationPending, resp.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateConflict", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleUser)

		mockService.On("Submit", userID, false, mock.AnythingOfType("dto.CreateEvaluationDTO")).
			Return(nil, service.ErrDuplicateEvaluation).Once()

		body, _ := json.Marshal(gin.H{"service_id": serviceID, "score": 8.0})
		req, _ := http.NewRequest(http.MethodPost, "/api/evaluations", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidScore", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleUser)

		body, _ := json.Marshal(gin.H{"service_id": serviceID, "score": 11.0})
		req, _ := http.NewRequest(http.MethodPost, "/api/evaluations", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEvaluationHandler_Delete(t *testing.T) {
	evaluationID := "5f0f7a9e-0000-0000-0000-0000000000e1"
	userID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	t.Run("Forbidden", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleUser)

		mockService.On("Delete", evaluationID, userID, false).Return(service.ErrNotOwner).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/evaluations/"+evaluationID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminDeletes", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleAdmin)

		mockService.On("Delete", evaluationID, userID, true).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/evaluations/"+evaluationID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestEvaluationHandler_List(t *testing.T) {
	userID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	mockService := new(MockEvaluationService)
	r := setupEvaluationRouter(mockService, userID, models.RoleUser)

	mockService.On("List", mock.AnythingOfType("dto.ListEvaluationsQuery")).
		Return(dto.NewPaginated([]dto.EvaluationResponse{
			{ID: "eval-1", Score: 8.0},
			{ID: "eval-2", Score: 6.0},
		}, 2, 1, 10), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/evaluations?min_score=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.Paginated[dto.EvaluationResponse]
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Total)
}

func TestEvaluationHandler_Stats(t *testing.T) {
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"
	userID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	t.Run("PerService", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleUser)

		trend := 1.5
		mockService.On("Stats", serviceID).Return(&dto.EvaluationStatsResponse{
			TotalCount:        3,
			AverageScore:      7.3,
			ScoreDistribution: map[string]int{"7": 2, "8": 1},
			RecentTrend:       &trend,
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/evaluations/stats?service_id="+serviceID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.EvaluationStatsResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, int64(3), resp.TotalCount)
		assert.Equal(t, 7.3, resp.AverageScore)
		if assert.NotNil(t, resp.RecentTrend) {
			assert.Equal(t, 1.5, *resp.RecentTrend)
		}
	})

	t.Run("GlobalForbiddenForAnonymous", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleUser)

		req, _ := http.NewRequest(http.MethodGet, "/api/evaluations/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "Stats", mock.Anything)
	})

	t.Run("GlobalForAdmin", func(t *testing.T) {
		mockService := new(MockEvaluationService)
		r := setupEvaluationRouter(mockService, userID, models.RoleAdmin)

		mockService.On("Stats", "").Return(&dto.EvaluationStatsResponse{
			TotalCount:        42,
			AverageScore:      6.8,
			ScoreDistribution: map[string]int{"7": 40, "5": 2},
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/admin/evaluations/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.EvaluationStatsResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, int64(42), resp.TotalCount)
		mockService.AssertExpectations(t)
	})
}
