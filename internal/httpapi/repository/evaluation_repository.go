package repository

import (
	"time"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"

	"gorm.io/gorm"
)

type EvaluationRepository interface {
	WithTx(tx *gorm.DB) EvaluationRepository
	Create(evaluation *models.Evaluation) error
	GetByID(id string) (*models.Evaluation, error)
	GetByIDWithDetails(id string) (*models.Evaluation, error)
	Update(evaluation *models.Evaluation) error
	UpdateStatus(id string, status models.EvaluationStatus) error
	Delete(id string) error
	List(query dto.ListEvaluationsQuery) ([]models.Evaluation, int64, error)
	CalculateAverageScore(serviceID string) (float64, error)
	Count(serviceID string) (int64, error)
	AverageInWindow(serviceID string, from, to time.Time) (float64, int64, error)
	ScoreDistribution(serviceID string) (map[int]int, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *evaluationRepository) WithTx(tx *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: tx}
}

func (r *evaluationRepository) Create(evaluation *models.Evaluation) error {
	return r.db.Create(evaluation).Error
}

func (r *evaluationRepository) GetByID(id string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.First(&evaluation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *evaluationRepository) GetByIDWithDetails(id string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.Preload("User").
		Preload("Service").
		Preload("Service.Country").
		First(&evaluation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *evaluationRepository) Update(evaluation *models.Evaluation) error {
	return r.db.Save(evaluation).Error
}

func (r *evaluationRepository) UpdateStatus(id string, status models.EvaluationStatus) error {
	return r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes the evaluation; criteria scores, reports and votes cascade
// via their foreign key constraints.
func (r *evaluationRepository) Delete(id string) error {
	return r.db.Select("CriteriaScores", "Reports", "Votes").
		Delete(&models.Evaluation{ID: id}).Error
}

// List retrieves evaluations with conjunctive optional filters
func (r *evaluationRepository) List(query dto.ListEvaluationsQuery) ([]models.Evaluation, int64, error) {
	var evaluations []models.Evaluation
	var total int64

	q := r.db.Model(&models.Evaluation{})

	if query.ServiceID != "" {
		q = q.Where("service_id = ?", query.ServiceID)
	}
	if query.UserID != "" {
		q = q.Where("user_id = ?", query.UserID)
	}
	if query.MinScore != nil {
		q = q.Where("score >= ?", *query.MinScore)
	}
	if query.MaxScore != nil {
		q = q.Where("score <= ?", *query.MaxScore)
	}
	if query.Comment != "" {
		q = q.Where("comment ILIKE ?", "%"+query.Comment+"%")
	}
	if query.DateFrom != nil {
		q = q.Where("timestamp >= ?", *query.DateFrom)
	}
	if query.DateTo != nil {
		q = q.Where("timestamp <= ?", *query.DateTo)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(query.SortBy, query.SortOrder, map[string]bool{
		"score":     true,
		"timestamp": true,
		"status":    true,
	}, "timestamp DESC")

	offset := (query.Page - 1) * query.Limit
	err := q.Preload("User").
		Preload("Service").
		Order(order).
		Limit(query.Limit).
		Offset(offset).
		Find(&evaluations).Error
	if err != nil {
		return nil, 0, err
	}

	return evaluations, total, nil
}

// CalculateAverageScore averages the score of every evaluation, regardless of
// status, optionally scoped to one service. Returns 0 when no evaluations
// match.
func (r *evaluationRepository) CalculateAverageScore(serviceID string) (float64, error) {
	var result struct {
		Average float64
	}

	q := r.db.Model(&models.Evaluation{}).
		Select("COALESCE(AVG(score), 0) as average")
	if serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}

	if err := q.Scan(&result).Error; err != nil {
		return 0, err
	}

	return result.Average, nil
}

// Count counts evaluations, optionally scoped to one service
func (r *evaluationRepository) Count(serviceID string) (int64, error) {
	var count int64
	q := r.db.Model(&models.Evaluation{})
	if serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}
	err := q.Count(&count).Error
	return count, err
}

// AverageInWindow returns the average score and count within [from, to)
func (r *evaluationRepository) AverageInWindow(serviceID string, from, to time.Time) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}

	q := r.db.Model(&models.Evaluation{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(*) as total").
		Where("timestamp >= ? AND timestamp < ?", from, to)
	if serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}

	if err := q.Scan(&result).Error; err != nil {
		return 0, 0, err
	}

	return result.Average, result.Total, nil
}

// ScoreDistribution buckets evaluations by rounded integer score
func (r *evaluationRepository) ScoreDistribution(serviceID string) (map[int]int, error) {
	var rows []struct {
		Bucket int
		Total  int
	}

	q := r.db.Model(&models.Evaluation{}).
		Select("CAST(ROUND(score) AS INT) as bucket, COUNT(*) as total").
		Group("bucket")
	if serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	distribution := make(map[int]int, len(rows))
	for _, row := range rows {
		distribution[row.Bucket] = row.Total
	}
	return distribution, nil
}
