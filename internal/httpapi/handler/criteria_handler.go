package handler

import (
	"errors"
	"net/http"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CriteriaHandler struct {
	criteriaService service.CriteriaService
}

func NewCriteriaHandler(criteriaService service.CriteriaService) *CriteriaHandler {
	return &CriteriaHandler{criteriaService: criteriaService}
}

// RegisterRoutes registers criteria routes. The catalog is public to read;
// managing criteria is admin-only, and recording scores requires an
// authenticated user.
func (h *CriteriaHandler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	criteria := public.Group("/criteria")
	{
		criteria.GET("", h.List)
		criteria.GET("/:id", h.Get)
	}

	adminCriteria := admin.Group("/criteria")
	{
		adminCriteria.POST("", h.Create)
		adminCriteria.PUT("/:id", h.Update)
		adminCriteria.DELETE("/:id", h.Delete)
	}

	scores := protected.Group("/criteria-scores")
	{
		scores.POST("", h.RecordScore)
	}

	public.GET("/evaluations/:id/criteria-scores", h.GetScores)
	public.GET("/evaluations/:id/overall-score", h.OverallScore)
}

// Create registers a new evaluation criteria
// POST /api/admin/criteria
func (h *CriteriaHandler) Create(c *gin.Context) {
	var req dto.CreateCriteriaDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	criteria, err := h.criteriaService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "criteria name already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create criteria"})
		return
	}

	c.JSON(http.StatusCreated, criteria)
}

func (h *CriteriaHandler) Get(c *gin.Context) {
	criteria, err := h.criteriaService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "criteria not found"})
		return
	}
	c.JSON(http.StatusOK, criteria)
}

func (h *CriteriaHandler) List(c *gin.Context) {
	var query dto.ListCriteriaQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.criteriaService.List(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list criteria"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CriteriaHandler) Update(c *gin.Context) {
	var req dto.UpdateCriteriaDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	criteria, err := h.criteriaService.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrCriteriaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "criteria not found"})
			return
		}
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "criteria name already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update criteria"})
		return
	}

	c.JSON(http.StatusOK, criteria)
}

// Delete removes a criteria; refused while evaluation scores reference it
// DELETE /api/admin/criteria/:id
func (h *CriteriaHandler) Delete(c *gin.Context) {
	err := h.criteriaService.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCriteriaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "criteria not found"})
			return
		}
		if errors.Is(err, service.ErrCriteriaInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "criteria is used in evaluations"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete criteria"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "criteria deleted"})
}

// RecordScore attaches a criteria score to an existing evaluation
// POST /api/criteria-scores
func (h *CriteriaHandler) RecordScore(c *gin.Context) {
	var req dto.CreateCriteriaScoreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.criteriaService.RecordScore(req)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		if errors.Is(err, service.ErrCriteriaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "criteria not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record score"})
		return
	}

	c.JSON(http.StatusCreated, score)
}

// GetScores lists the criteria scores recorded for an evaluation
// GET /api/evaluations/:id/criteria-scores
func (h *CriteriaHandler) GetScores(c *gin.Context) {
	scores, err := h.criteriaService.GetScores(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list scores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": scores})
}

// OverallScore returns the weighted mean over an evaluation's criteria scores
// GET /api/evaluations/:id/overall-score
func (h *CriteriaHandler) OverallScore(c *gin.Context) {
	overall, err := h.criteriaService.ComputeOverallScore(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute score"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"overall_score": overall})
}
