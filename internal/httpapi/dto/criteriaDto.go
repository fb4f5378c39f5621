package dto

import "civiscore/internal/httpapi/models"

// CreateCriteriaDTO for registering a new evaluation criteria
type CreateCriteriaDTO struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Category    string   `json:"category" binding:"required,max=100"`
	Weight      *float64 `json:"weight" binding:"omitempty,gt=0"`
}

// UpdateCriteriaDTO for partial criteria updates
type UpdateCriteriaDTO struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Weight      *float64 `json:"weight" binding:"omitempty,gt=0"`
}

// CriteriaResponse for returning criteria information
type CriteriaResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Weight      float64 `json:"weight"`
}

func FromModelToCriteriaResponse(criteria *models.Criteria) *CriteriaResponse {
	return &CriteriaResponse{
		ID:          criteria.ID,
		Name:        criteria.Name,
		Description: criteria.Description,
		Category:    criteria.Category,
		Weight:      criteria.Weight,
	}
}

// CreateCriteriaScoreDTO for recording a criteria score on an evaluation
type CreateCriteriaScoreDTO struct {
	EvaluationID string  `json:"evaluation_id" binding:"required,uuid"`
	CriteriaID   string  `json:"criteria_id" binding:"required,uuid"`
	Score        float64 `json:"score" binding:"min=0,max=10"`
}

// CriteriaScoreResponse for returning a recorded criteria score
type CriteriaScoreResponse struct {
	ID           string            `json:"id"`
	EvaluationID string            `json:"evaluation_id"`
	CriteriaID   string            `json:"criteria_id"`
	Score        float64           `json:"score"`
	Criteria     *CriteriaResponse `json:"criteria,omitempty"`
}

func FromModelToCriteriaScoreResponse(score *models.CriteriaScore) *CriteriaScoreResponse {
	resp := &CriteriaScoreResponse{
		ID:           score.ID,
		EvaluationID: score.EvaluationID,
		CriteriaID:   score.CriteriaID,
		Score:        score.Score,
	}
	if score.Criteria.ID != "" {
		resp.Criteria = FromModelToCriteriaResponse(&score.Criteria)
	}
	return resp
}

// ListCriteriaQuery carries criteria-listing filters
type ListCriteriaQuery struct {
	Category string `form:"category"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int    `form:"limit,default=100" binding:"omitempty,min=1,max=100"`
}
