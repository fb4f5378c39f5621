package dto

import "civiscore/internal/httpapi/models"

// CreateCountryDTO for registering a new country
type CreateCountryDTO struct {
	Name   string `json:"name" binding:"required,max=100"`
	Region string `json:"region" binding:"required,max=100"`
	Code   string `json:"code" binding:"omitempty,max=3"`
}

// CountryResponse for returning country information
type CountryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Code   string `json:"code,omitempty"`
}

func FromModelToCountryResponse(country *models.Country) *CountryResponse {
	return &CountryResponse{
		ID:     country.ID,
		Name:   country.Name,
		Region: country.Region,
		Code:   country.Code,
	}
}

// ListCountriesQuery carries country-listing filters
type ListCountriesQuery struct {
	Region    string `form:"region"`
	SortBy    string `form:"sort_by,default=name"`
	SortOrder string `form:"sort_order,default=asc" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}
