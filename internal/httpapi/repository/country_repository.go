package repository

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"

	"gorm.io/gorm"
)

type CountryRepository interface {
	Create(country *models.Country) error
	GetByID(id string) (*models.Country, error)
	GetByName(name string) (*models.Country, error)
	List(query dto.ListCountriesQuery) ([]models.Country, int64, error)
	Delete(id string) error
	CountServices(countryID string) (int64, error)
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) Create(country *models.Country) error {
	return r.db.Create(country).Error
}

func (r *countryRepository) GetByID(id string) (*models.Country, error) {
	var country models.Country
	if err := r.db.First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) GetByName(name string) (*models.Country, error) {
	var country models.Country
	if err := r.db.First(&country, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// List retrieves countries with optional region filter and pagination
func (r *countryRepository) List(query dto.ListCountriesQuery) ([]models.Country, int64, error) {
	var countries []models.Country
	var total int64

	q := r.db.Model(&models.Country{})
	if query.Region != "" {
		q = q.Where("region = ?", query.Region)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(query.SortBy, query.SortOrder, map[string]bool{
		"name":   true,
		"region": true,
	}, "name ASC")

	offset := (query.Page - 1) * query.Limit
	if err := q.Order(order).Limit(query.Limit).Offset(offset).Find(&countries).Error; err != nil {
		return nil, 0, err
	}

	return countries, total, nil
}

func (r *countryRepository) Delete(id string) error {
	return r.db.Delete(&models.Country{}, "id = ?", id).Error
}

// CountServices counts services referencing the country; deletion is blocked
// while any remain.
func (r *countryRepository) CountServices(countryID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Service{}).Where("country_id = ?", countryID).Count(&count).Error
	return count, err
}
