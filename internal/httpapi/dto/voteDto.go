package dto

import (
	"time"

	"civiscore/internal/httpapi/models"
)

// CastVoteDTO for voting an evaluation helpful/unhelpful
type CastVoteDTO struct {
	EvaluationID string `json:"evaluation_id" binding:"required,uuid"`
	IsHelpful    *bool  `json:"is_helpful" binding:"required"`
}

// VoteResponse for returning vote information
type VoteResponse struct {
	ID           string    `json:"id"`
	EvaluationID string    `json:"evaluation_id"`
	VoterID      *string   `json:"voter_id,omitempty"`
	IsHelpful    bool      `json:"is_helpful"`
	Timestamp    time.Time `json:"timestamp"`
}

func FromModelToVoteResponse(vote *models.EvaluationVote) *VoteResponse {
	return &VoteResponse{
		ID:           vote.ID,
		EvaluationID: vote.EvaluationID,
		VoterID:      vote.VoterID,
		IsHelpful:    vote.IsHelpful,
		Timestamp:    vote.Timestamp,
	}
}

// VoteCountsResponse for returning helpful/unhelpful tallies
type VoteCountsResponse struct {
	Helpful   int64 `json:"helpful"`
	Unhelpful int64 `json:"unhelpful"`
}
