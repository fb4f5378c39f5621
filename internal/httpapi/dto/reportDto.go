package dto

import (
	"time"

	"civiscore/internal/httpapi/models"
)

// CreateReportDTO for filing a moderation report against an evaluation
type CreateReportDTO struct {
	EvaluationID string              `json:"evaluation_id" binding:"required,uuid"`
	Reason       models.ReportReason `json:"reason" binding:"required,oneof=inappropriate_content spam offensive misleading other"`
	Description  string              `json:"description" binding:"omitempty,max=1000"`
}

// ResolveReportDTO carries an admin's resolution decision
type ResolveReportDTO struct {
	Resolution models.ReportResolution `json:"resolution" binding:"required,oneof=accepted rejected"`
}

// ReportResponse for returning report information
type ReportResponse struct {
	ID           string                  `json:"id"`
	EvaluationID string                  `json:"evaluation_id"`
	ReporterID   *string                 `json:"reporter_id,omitempty"`
	Reason       models.ReportReason     `json:"reason"`
	Description  string                  `json:"description,omitempty"`
	Resolution   models.ReportResolution `json:"resolution"`
	Timestamp    time.Time               `json:"timestamp"`
	Reporter     *UserResponse           `json:"reporter,omitempty"`
	Evaluation   *EvaluationResponse     `json:"evaluation,omitempty"`
}

func FromModelToReportResponse(report *models.EvaluationReport) *ReportResponse {
	resp := &ReportResponse{
		ID:           report.ID,
		EvaluationID: report.EvaluationID,
		ReporterID:   report.ReporterID,
		Reason:       report.Reason,
		Description:  report.Description,
		Resolution:   report.Resolution,
		Timestamp:    report.Timestamp,
	}
	if report.Reporter != nil && report.Reporter.ID != "" {
		resp.Reporter = FromModelToUserResponse(report.Reporter)
	}
	if report.Evaluation.ID != "" {
		resp.Evaluation = FromModelToEvaluationResponse(&report.Evaluation)
	}
	return resp
}

// ListReportsQuery carries report-listing filters (admin only)
type ListReportsQuery struct {
	EvaluationID string `form:"evaluation_id" binding:"omitempty,uuid"`
	ReporterID   string `form:"reporter_id" binding:"omitempty,uuid"`
	Reason       string `form:"reason" binding:"omitempty,oneof=inappropriate_content spam offensive misleading other"`
	Resolution   string `form:"resolution" binding:"omitempty,oneof=pending accepted rejected"`
	SortBy       string `form:"sort_by,default=timestamp"`
	SortOrder    string `form:"sort_order,default=desc" binding:"omitempty,oneof=asc desc"`
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}
