package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Criteria is a named, weighted sub-dimension of an evaluation. Category maps
// the criteria to a service category. Criteria referenced by at least one
// score cannot be deleted.
type Criteria struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description,omitempty"`
	Category    string  `gorm:"size:100;not null;index" json:"category"`
	Weight      float64 `gorm:"default:1;not null;check:weight > 0" json:"weight"`

	// Associations
	Scores []CriteriaScore `json:"scores,omitempty" gorm:"foreignKey:CriteriaID"`
}

func (criteria *Criteria) BeforeCreate(tx *gorm.DB) (err error) {
	if criteria.ID == "" {
		criteria.ID = uuid.New().String()
	}
	return
}

func (Criteria) TableName() string {
	return "evaluation_criteria"
}

// CriteriaScore is one criteria's score inside an evaluation. No uniqueness
// constraint on (evaluation_id, criteria_id): duplicate submissions persist.
type CriteriaScore struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	EvaluationID string  `gorm:"type:uuid;not null;index" json:"evaluation_id"`
	CriteriaID   string  `gorm:"type:uuid;not null;index" json:"criteria_id"`
	Score        float64 `gorm:"not null;check:score >= 0 AND score <= 10" json:"score"`

	// Associations
	Evaluation Evaluation `json:"-" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE;"`
	Criteria   Criteria   `json:"criteria,omitempty" gorm:"foreignKey:CriteriaID"`
}

func (score *CriteriaScore) BeforeCreate(tx *gorm.DB) (err error) {
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	return
}

func (CriteriaScore) TableName() string {
	return "evaluation_criteria_scores"
}
