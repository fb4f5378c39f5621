package repository

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	WithTx(tx *gorm.DB) ReportRepository
	Create(report *models.EvaluationReport) error
	GetByID(id string) (*models.EvaluationReport, error)
	GetByIDWithDetails(id string) (*models.EvaluationReport, error)
	MarkResolved(id string, resolution models.ReportResolution) error
	List(query dto.ListReportsQuery) ([]models.EvaluationReport, int64, error)
	CountUnresolved(evaluationID string, excludeReportID string) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *reportRepository) WithTx(tx *gorm.DB) ReportRepository {
	return &reportRepository{db: tx}
}

func (r *reportRepository) Create(report *models.EvaluationReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetByID(id string) (*models.EvaluationReport, error) {
	var report models.EvaluationReport
	if err := r.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetByIDWithDetails(id string) (*models.EvaluationReport, error) {
	var report models.EvaluationReport
	err := r.db.Preload("Reporter").
		Preload("Evaluation").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// MarkResolved sets a report's resolution, but only while it is still
// pending. Zero rows affected means another resolution won the race (or the
// report is gone) and surfaces as ErrRecordNotFound.
func (r *reportRepository) MarkResolved(id string, resolution models.ReportResolution) error {
	result := r.db.Model(&models.EvaluationReport{}).
		Where("id = ? AND resolution = ?", id, models.ReportPending).
		Update("resolution", resolution)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves reports with filtering and sorting (admin review queue)
func (r *reportRepository) List(query dto.ListReportsQuery) ([]models.EvaluationReport, int64, error) {
	var reports []models.EvaluationReport
	var total int64

	q := r.db.Model(&models.EvaluationReport{})

	if query.EvaluationID != "" {
		q = q.Where("evaluation_id = ?", query.EvaluationID)
	}
	if query.ReporterID != "" {
		q = q.Where("reporter_id = ?", query.ReporterID)
	}
	if query.Reason != "" {
		q = q.Where("reason = ?", query.Reason)
	}
	if query.Resolution != "" {
		q = q.Where("resolution = ?", query.Resolution)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderClause(query.SortBy, query.SortOrder, map[string]bool{
		"timestamp":  true,
		"reason":     true,
		"resolution": true,
	}, "timestamp DESC")

	offset := (query.Page - 1) * query.Limit
	err := q.Preload("Reporter").
		Preload("Evaluation").
		Order(order).
		Limit(query.Limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// CountUnresolved counts pending reports for an evaluation, optionally
// excluding one report (the one being resolved).
func (r *reportRepository) CountUnresolved(evaluationID string, excludeReportID string) (int64, error) {
	var count int64
	q := r.db.Model(&models.EvaluationReport{}).
		Where("evaluation_id = ? AND resolution = ?", evaluationID, models.ReportPending)
	if excludeReportID != "" {
		q = q.Where("id <> ?", excludeReportID)
	}
	err := q.Count(&count).Error
	return count, err
}
