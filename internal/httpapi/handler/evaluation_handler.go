package handler

import (
	"errors"
	"net/http"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/middleware"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	evaluationService service.EvaluationService
}

func NewEvaluationHandler(evaluationService service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// RegisterRoutes registers evaluation routes. Listing and per-service stats
// are public; submitting, editing and deleting require an authenticated user.
// Global stats (no service filter) are admin-only.
func (h *EvaluationHandler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	evaluations := public.Group("/evaluations")
	{
		evaluations.GET("", h.List)
		evaluations.GET("/stats", h.Stats)
		evaluations.GET("/:id", h.Get)
	}

	protectedEvaluations := protected.Group("/evaluations")
	{
		protectedEvaluations.POST("", h.Submit)
		protectedEvaluations.POST("/detailed", h.SubmitDetailed)
		protectedEvaluations.PUT("/:id", h.Update)
		protectedEvaluations.DELETE("/:id", h.Delete)
	}

	admin.GET("/evaluations/stats", h.Stats)
}

// Submit creates a plain evaluation for a service
// POST /api/evaluations
func (h *EvaluationHandler) Submit(c *gin.Context) {
	var req dto.CreateEvaluationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evaluation, err := h.evaluationService.Submit(middleware.UserID(c), middleware.IsAdmin(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, evaluation)
}

// SubmitDetailed creates an evaluation with per-criteria scores
// POST /api/evaluations/detailed
func (h *EvaluationHandler) SubmitDetailed(c *gin.Context) {
	var req dto.CreateDetailedEvaluationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evaluation, err := h.evaluationService.SubmitDetailed(middleware.UserID(c), middleware.IsAdmin(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, evaluation)
}

func (h *EvaluationHandler) Get(c *gin.Context) {
	evaluation, err := h.evaluationService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// List retrieves evaluations with filters, sorting and pagination
// GET /api/evaluations
func (h *EvaluationHandler) List(c *gin.Context) {
	var query dto.ListEvaluationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.evaluationService.List(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list evaluations"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Update patches the caller's own evaluation
// PUT /api/evaluations/:id
func (h *EvaluationHandler) Update(c *gin.Context) {
	var req dto.UpdateEvaluationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evaluation, err := h.evaluationService.Update(c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// Delete removes an evaluation (owner or admin)
// DELETE /api/evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	err := h.evaluationService.Delete(c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "evaluation deleted"})
}

// Stats returns aggregate statistics, per service or global
// GET /api/evaluations/stats?service_id=...
// GET /api/admin/evaluations/stats
func (h *EvaluationHandler) Stats(c *gin.Context) {
	serviceID := c.Query("service_id")
	if serviceID == "" && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "global statistics are restricted to administrators"})
		return
	}

	stats, err := h.evaluationService.Stats(serviceID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *EvaluationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
	case errors.Is(err, service.ErrEvaluationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
	case errors.Is(err, service.ErrCriteriaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "criteria not found"})
	case errors.Is(err, service.ErrDuplicateEvaluation):
		c.JSON(http.StatusConflict, gin.H{"error": "evaluation already exists for this service"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this evaluation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
