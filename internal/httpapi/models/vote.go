package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvaluationVote is a helpful/unhelpful peer vote on an evaluation.
// The composite unique index enforces one vote per (evaluation, voter);
// a repeat vote updates in place.
type EvaluationVote struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	EvaluationID string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_evaluation_voter;index" json:"evaluation_id"`
	VoterID      *string   `gorm:"type:uuid;uniqueIndex:idx_votes_evaluation_voter" json:"voter_id,omitempty"`
	IsHelpful    bool      `gorm:"not null" json:"is_helpful"`
	Timestamp    time.Time `json:"timestamp"`
	CreatedAt    time.Time `json:"created_at"`

	// Associations
	Evaluation Evaluation `json:"-" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE;"`
	Voter      *User      `json:"voter,omitempty" gorm:"foreignKey:VoterID;constraint:OnDelete:SET NULL;"`
}

func (vote *EvaluationVote) BeforeCreate(tx *gorm.DB) (err error) {
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	if vote.Timestamp.IsZero() {
		vote.Timestamp = time.Now().UTC()
	}
	return
}

func (EvaluationVote) TableName() string {
	return "evaluation_votes"
}
