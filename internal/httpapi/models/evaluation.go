package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvaluationStatus string

const (
	EvaluationPending  EvaluationStatus = "pending"
	EvaluationApproved EvaluationStatus = "approved"
	EvaluationFlagged  EvaluationStatus = "flagged"
	EvaluationRejected EvaluationStatus = "rejected"
)

// Evaluation is one user's rating + comment for one service.
// The composite unique index enforces at most one evaluation per
// (user, service) pair at the storage level; the insert path treats the
// resulting constraint violation as the duplicate signal.
type Evaluation struct {
	ID        string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string           `gorm:"type:uuid;not null;uniqueIndex:idx_evaluations_user_service" json:"user_id"`
	ServiceID string           `gorm:"type:uuid;not null;uniqueIndex:idx_evaluations_user_service;index" json:"service_id"`
	Score     float64          `gorm:"not null;check:score >= 0 AND score <= 10" json:"score"`
	Comment   string           `gorm:"size:1000" json:"comment,omitempty"`
	Status    EvaluationStatus `gorm:"size:20;default:'pending';not null;index" json:"status"`
	Timestamp time.Time        `gorm:"index" json:"timestamp"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Associations (scores/reports/votes are cascade-deleted with the evaluation)
	User           User               `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Service        Service            `json:"service,omitempty" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE;"`
	CriteriaScores []CriteriaScore    `json:"criteria_scores,omitempty" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE;"`
	Reports        []EvaluationReport `json:"reports,omitempty" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE;"`
	Votes          []EvaluationVote   `json:"votes,omitempty" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE;"`
}

func (evaluation *Evaluation) BeforeCreate(tx *gorm.DB) (err error) {
	if evaluation.ID == "" {
		evaluation.ID = uuid.New().String()
	}
	if evaluation.Timestamp.IsZero() {
		evaluation.Timestamp = time.Now().UTC()
	}
	return
}

func (Evaluation) TableName() string {
	return "evaluations"
}
