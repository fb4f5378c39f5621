package repository

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	WithTx(tx *gorm.DB) ServiceRepository
	Create(service *models.Service) error
	GetByID(id string) (*models.Service, error)
	GetByIDWithCountry(id string) (*models.Service, error)
	List(query dto.ListServicesQuery) ([]models.Service, int64, error)
	UpdateRating(serviceID string, rating float64) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *serviceRepository) WithTx(tx *gorm.DB) ServiceRepository {
	return &serviceRepository{db: tx}
}

func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *serviceRepository) GetByID(id string) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) GetByIDWithCountry(id string) (*models.Service, error) {
	var service models.Service
	if err := r.db.Preload("Country").First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// List retrieves services with keyword/category/country/rating filters
func (r *serviceRepository) List(query dto.ListServicesQuery) ([]models.Service, int64, error) {
	var services []models.Service
	var total int64

	q := r.db.Model(&models.Service{})

	if query.Keyword != "" {
		q = q.Where("name ILIKE ?", "%"+query.Keyword+"%")
	}
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.CountryID != "" {
		q = q.Where("country_id = ?", query.CountryID)
	}
	if query.MinRating != nil {
		q = q.Where("rating >= ?", *query.MinRating)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(query.SortBy, query.SortOrder, map[string]bool{
		"name":       true,
		"category":   true,
		"rating":     true,
		"created_at": true,
	}, "name ASC")

	offset := (query.Page - 1) * query.Limit
	err := q.Preload("Country").
		Order(order).
		Limit(query.Limit).
		Offset(offset).
		Find(&services).Error
	if err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

// UpdateRating writes the derived rating aggregate. Only the rating column is
// touched so concurrent catalog edits are not clobbered.
func (r *serviceRepository) UpdateRating(serviceID string, rating float64) error {
	return r.db.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Update("rating", rating).Error
}
