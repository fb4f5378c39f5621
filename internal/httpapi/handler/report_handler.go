package handler

import (
	"errors"
	"net/http"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/middleware"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers moderation routes. Filing a report requires an
// authenticated user; the review queue and resolution are admin-only.
func (h *ReportHandler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.POST("/reports", h.File)

	adminReports := admin.Group("/reports")
	{
		adminReports.GET("", h.List)
		adminReports.GET("/:id", h.Get)
		adminReports.PUT("/:id/resolve", h.Resolve)
	}
}

// File records a report against an evaluation
// POST /api/reports
func (h *ReportHandler) File(c *gin.Context) {
	var req dto.CreateReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.File(middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to file report"})
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reportService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// List retrieves the moderation review queue
// GET /api/admin/reports
func (h *ReportHandler) List(c *gin.Context) {
	var query dto.ListReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.reportService.List(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Resolve applies an admin decision to a pending report
// PUT /api/admin/reports/:id/resolve
func (h *ReportHandler) Resolve(c *gin.Context) {
	var req dto.ResolveReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.Resolve(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		if errors.Is(err, service.ErrReportAlreadyResolved) {
			c.JSON(http.StatusConflict, gin.H{"error": "report already resolved"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
