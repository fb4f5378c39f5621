package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a government/public service that users evaluate.
// Rating is a derived aggregate: never written by clients, recomputed from the
// evaluation set whenever an evaluation for the service is created, updated or
// deleted.
type Service struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Category  string    `gorm:"size:100;index" json:"category"`
	CountryID string    `gorm:"type:uuid;not null;index" json:"country_id"`
	Rating    float64   `gorm:"default:0" json:"rating"`
	PlaceID   string    `gorm:"size:255" json:"place_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Country     Country      `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	Evaluations []Evaluation `json:"evaluations,omitempty" gorm:"foreignKey:ServiceID"`
}

func (service *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	return
}

func (Service) TableName() string {
	return "services"
}
