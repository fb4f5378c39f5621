package dto

import (
	"time"

	"civiscore/internal/httpapi/models"
)

// CreateEvaluationDTO for submitting a plain evaluation
type CreateEvaluationDTO struct {
	ServiceID string  `json:"service_id" binding:"required,uuid"`
	Score     float64 `json:"score" binding:"min=0,max=10"`
	Comment   string  `json:"comment" binding:"omitempty,max=1000"`
}

// CriteriaScoreInput is one criteria score inside a detailed submission
type CriteriaScoreInput struct {
	CriteriaID string  `json:"criteria_id" binding:"required,uuid"`
	Score      float64 `json:"score" binding:"min=0,max=10"`
}

// CreateDetailedEvaluationDTO for submitting an evaluation with criteria scores.
// When criteria scores are supplied the weighted overall score replaces Score.
type CreateDetailedEvaluationDTO struct {
	ServiceID      string               `json:"service_id" binding:"required,uuid"`
	Score          float64              `json:"score" binding:"min=0,max=10"`
	Comment        string               `json:"comment" binding:"omitempty,max=1000"`
	CriteriaScores []CriteriaScoreInput `json:"criteria_scores" binding:"omitempty,dive"`
}

// UpdateEvaluationDTO for partial evaluation updates (owner only)
type UpdateEvaluationDTO struct {
	Score   *float64 `json:"score" binding:"omitempty,min=0,max=10"`
	Comment *string  `json:"comment" binding:"omitempty,max=1000"`
}

// ListEvaluationsQuery carries evaluation-listing filters; all are optional
// and combined with AND.
type ListEvaluationsQuery struct {
	ServiceID string     `form:"service_id" binding:"omitempty,uuid"`
	UserID    string     `form:"user_id" binding:"omitempty,uuid"`
	MinScore  *float64   `form:"min_score" binding:"omitempty,min=0,max=10"`
	MaxScore  *float64   `form:"max_score" binding:"omitempty,min=0,max=10"`
	Comment   string     `form:"comment"`
	DateFrom  *time.Time `form:"date_from" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo    *time.Time `form:"date_to" time_format:"2006-01-02T15:04:05Z07:00"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending approved flagged rejected"`
	SortBy    string     `form:"sort_by,default=timestamp"`
	SortOrder string     `form:"sort_order,default=desc" binding:"omitempty,oneof=asc desc"`
	Page      int        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int        `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// EvaluationResponse for returning evaluation information
type EvaluationResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	ServiceID string                  `json:"service_id"`
	Score     float64                 `json:"score"`
	Comment   string                  `json:"comment,omitempty"`
	Status    models.EvaluationStatus `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	User      *UserResponse           `json:"user,omitempty"`
	Service   *ServiceResponse        `json:"service,omitempty"`
}

func FromModelToEvaluationResponse(evaluation *models.Evaluation) *EvaluationResponse {
	resp := &EvaluationResponse{
		ID:        evaluation.ID,
		UserID:    evaluation.UserID,
		ServiceID: evaluation.ServiceID,
		Score:     evaluation.Score,
		Comment:   evaluation.Comment,
		Status:    evaluation.Status,
		Timestamp: evaluation.Timestamp,
	}
	if evaluation.User.ID != "" {
		resp.User = FromModelToUserResponse(&evaluation.User)
	}
	if evaluation.Service.ID != "" {
		resp.Service = FromModelToServiceResponse(&evaluation.Service)
	}
	return resp
}

// EvaluationStatsResponse aggregates evaluation statistics for one service or
// globally. ScoreDistribution buckets by rounded integer score, empty buckets
// omitted. RecentTrend is the last-30-days average minus the preceding
// 30-day-window average, nil when both windows are empty.
type EvaluationStatsResponse struct {
	TotalCount        int64          `json:"total_count"`
	AverageScore      float64        `json:"average_score"`
	ScoreDistribution map[string]int `json:"score_distribution"`
	RecentTrend       *float64       `json:"recent_trend,omitempty"`
}
