package repository

import (
	"civiscore/internal/httpapi/models"

	"gorm.io/gorm"
)

type VoteRepository interface {
	WithTx(tx *gorm.DB) VoteRepository
	Create(vote *models.EvaluationVote) error
	Update(vote *models.EvaluationVote) error
	Delete(evaluationID, voterID string) error
	GetByEvaluationAndVoter(evaluationID, voterID string) (*models.EvaluationVote, error)
	ListByEvaluation(evaluationID string, isHelpful *bool, page, limit int) ([]models.EvaluationVote, int64, error)
	CountByEvaluation(evaluationID string) (helpful, unhelpful int64, err error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *voteRepository) WithTx(tx *gorm.DB) VoteRepository {
	return &voteRepository{db: tx}
}

func (r *voteRepository) Create(vote *models.EvaluationVote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepository) Update(vote *models.EvaluationVote) error {
	return r.db.Save(vote).Error
}

func (r *voteRepository) Delete(evaluationID, voterID string) error {
	result := r.db.Where("evaluation_id = ? AND voter_id = ?", evaluationID, voterID).
		Delete(&models.EvaluationVote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *voteRepository) GetByEvaluationAndVoter(evaluationID, voterID string) (*models.EvaluationVote, error) {
	var vote models.EvaluationVote
	err := r.db.Where("evaluation_id = ? AND voter_id = ?", evaluationID, voterID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// ListByEvaluation retrieves votes for an evaluation with optional helpful filter
func (r *voteRepository) ListByEvaluation(evaluationID string, isHelpful *bool, page, limit int) ([]models.EvaluationVote, int64, error) {
	var votes []models.EvaluationVote
	var total int64

	q := r.db.Model(&models.EvaluationVote{}).Where("evaluation_id = ?", evaluationID)
	if isHelpful != nil {
		q = q.Where("is_helpful = ?", *isHelpful)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&votes).Error
	if err != nil {
		return nil, 0, err
	}

	return votes, total, nil
}

// CountByEvaluation tallies helpful and unhelpful votes in one pass
func (r *voteRepository) CountByEvaluation(evaluationID string) (int64, int64, error) {
	var result struct {
		Helpful   int64
		Unhelpful int64
	}

	err := r.db.Model(&models.EvaluationVote{}).
		Select("COUNT(*) FILTER (WHERE is_helpful) as helpful, COUNT(*) FILTER (WHERE NOT is_helpful) as unhelpful").
		Where("evaluation_id = ?", evaluationID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Helpful, result.Unhelpful, nil
}
