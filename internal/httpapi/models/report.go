package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportReason string

const (
	ReasonInappropriateContent ReportReason = "inappropriate_content"
	ReasonSpam                 ReportReason = "spam"
	ReasonOffensive            ReportReason = "offensive"
	ReasonMisleading           ReportReason = "misleading"
	ReasonOther                ReportReason = "other"
)

// ValidReportReason reports whether reason is one of the known values.
func ValidReportReason(reason ReportReason) bool {
	switch reason {
	case ReasonInappropriateContent, ReasonSpam, ReasonOffensive, ReasonMisleading, ReasonOther:
		return true
	}
	return false
}

type ReportResolution string

const (
	ReportPending  ReportResolution = "pending"
	ReportAccepted ReportResolution = "accepted"
	ReportRejected ReportResolution = "rejected"
)

// EvaluationReport is a moderation report filed against an evaluation.
// ReporterID is nullable so reports survive reporter deletion.
type EvaluationReport struct {
	ID           string           `gorm:"primaryKey;type:uuid" json:"id"`
	EvaluationID string           `gorm:"type:uuid;not null;index" json:"evaluation_id"`
	ReporterID   *string          `gorm:"type:uuid;index" json:"reporter_id,omitempty"`
	Reason       ReportReason     `gorm:"size:30;not null" json:"reason"`
	Description  string           `gorm:"size:1000" json:"description,omitempty"`
	Resolution   ReportResolution `gorm:"size:10;default:'pending';not null;index" json:"resolution"`
	Timestamp    time.Time        `gorm:"index" json:"timestamp"`
	CreatedAt    time.Time        `json:"created_at"`

	// Associations
	Evaluation Evaluation `json:"evaluation,omitempty" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE;"`
	Reporter   *User      `json:"reporter,omitempty" gorm:"foreignKey:ReporterID;constraint:OnDelete:SET NULL;"`
}

func (report *EvaluationReport) BeforeCreate(tx *gorm.DB) (err error) {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now().UTC()
	}
	return
}

func (EvaluationReport) TableName() string {
	return "evaluation_reports"
}
