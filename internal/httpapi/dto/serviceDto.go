package dto

import (
	"time"

	"civiscore/internal/httpapi/models"
)

// CreateServiceDTO for registering a new public service
type CreateServiceDTO struct {
	Name      string `json:"name" binding:"required,max=200"`
	Category  string `json:"category" binding:"required,max=100"`
	CountryID string `json:"country_id" binding:"required,uuid"`
	PlaceID   string `json:"place_id" binding:"omitempty,max=255"`
}

// ServiceResponse for returning service information
type ServiceResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	CountryID string           `json:"country_id"`
	Rating    float64          `json:"rating"`
	PlaceID   string           `json:"place_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Country   *CountryResponse `json:"country,omitempty"`
}

func FromModelToServiceResponse(service *models.Service) *ServiceResponse {
	resp := &ServiceResponse{
		ID:        service.ID,
		Name:      service.Name,
		Category:  service.Category,
		CountryID: service.CountryID,
		Rating:    service.Rating,
		PlaceID:   service.PlaceID,
		CreatedAt: service.CreatedAt,
	}
	if service.Country.ID != "" {
		resp.Country = FromModelToCountryResponse(&service.Country)
	}
	return resp
}

// ListServicesQuery carries service-listing filters
type ListServicesQuery struct {
	Keyword   string   `form:"keyword"`
	Category  string   `form:"category"`
	CountryID string   `form:"country_id" binding:"omitempty,uuid"`
	MinRating *float64 `form:"min_rating" binding:"omitempty,min=0,max=10"`
	SortBy    string   `form:"sort_by,default=name"`
	SortOrder string   `form:"sort_order,default=asc" binding:"omitempty,oneof=asc desc"`
	Page      int      `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int      `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}
