package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Country struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Region    string    `gorm:"size:100;index" json:"region"`
	Code      string    `gorm:"size:3" json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Services []Service `json:"services,omitempty" gorm:"foreignKey:CountryID"`
}

func (country *Country) BeforeCreate(tx *gorm.DB) (err error) {
	if country.ID == "" {
		country.ID = uuid.New().String()
	}
	return
}

func (Country) TableName() string {
	return "countries"
}
