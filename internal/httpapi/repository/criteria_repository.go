package repository

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"

	"gorm.io/gorm"
)

type CriteriaRepository interface {
	WithTx(tx *gorm.DB) CriteriaRepository
	Create(criteria *models.Criteria) error
	GetByID(id string) (*models.Criteria, error)
	GetByIDs(ids []string) ([]models.Criteria, error)
	List(query dto.ListCriteriaQuery) ([]models.Criteria, int64, error)
	Update(criteria *models.Criteria) error
	Delete(id string) error
	CountScores(criteriaID string) (int64, error)
	CreateScore(score *models.CriteriaScore) error
	GetScoresByEvaluation(evaluationID string) ([]models.CriteriaScore, error)
}

type criteriaRepository struct {
	db *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) CriteriaRepository {
	return &criteriaRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *criteriaRepository) WithTx(tx *gorm.DB) CriteriaRepository {
	return &criteriaRepository{db: tx}
}

func (r *criteriaRepository) Create(criteria *models.Criteria) error {
	return r.db.Create(criteria).Error
}

func (r *criteriaRepository) GetByID(id string) (*models.Criteria, error) {
	var criteria models.Criteria
	if err := r.db.First(&criteria, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (r *criteriaRepository) GetByIDs(ids []string) ([]models.Criteria, error) {
	var criteria []models.Criteria
	if err := r.db.Find(&criteria, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	return criteria, nil
}

// List retrieves criteria with optional category filter
func (r *criteriaRepository) List(query dto.ListCriteriaQuery) ([]models.Criteria, int64, error) {
	var criteria []models.Criteria
	var total int64

	q := r.db.Model(&models.Criteria{})
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	if err := q.Order("name ASC").Limit(query.Limit).Offset(offset).Find(&criteria).Error; err != nil {
		return nil, 0, err
	}

	return criteria, total, nil
}

func (r *criteriaRepository) Update(criteria *models.Criteria) error {
	return r.db.Save(criteria).Error
}

func (r *criteriaRepository) Delete(id string) error {
	return r.db.Delete(&models.Criteria{}, "id = ?", id).Error
}

// CountScores counts criteria scores referencing the criteria; deletion is
// blocked while any remain.
func (r *criteriaRepository) CountScores(criteriaID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CriteriaScore{}).
		Where("criteria_id = ?", criteriaID).
		Count(&count).Error
	return count, err
}

func (r *criteriaRepository) CreateScore(score *models.CriteriaScore) error {
	return r.db.Create(score).Error
}

// GetScoresByEvaluation retrieves all criteria scores for an evaluation with
// their criteria preloaded for weighting.
func (r *criteriaRepository) GetScoresByEvaluation(evaluationID string) ([]models.CriteriaScore, error) {
	var scores []models.CriteriaScore
	err := r.db.Preload("Criteria").
		Where("evaluation_id = ?", evaluationID).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}
