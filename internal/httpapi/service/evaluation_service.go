package service

import (
	"math"
	"strconv"
	"time"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"

	"gorm.io/gorm"
)

// trendWindow is the size of the two comparison windows for the recent-trend
// statistic.
const trendWindow = 30 * 24 * time.Hour

type EvaluationService interface {
	Submit(authorID string, authorIsAdmin bool, req dto.CreateEvaluationDTO) (*dto.EvaluationResponse, error)
	SubmitDetailed(authorID string, authorIsAdmin bool, req dto.CreateDetailedEvaluationDTO) (*dto.EvaluationResponse, error)
	Update(evaluationID, callerID string, req dto.UpdateEvaluationDTO) (*dto.EvaluationResponse, error)
	Delete(evaluationID, callerID string, callerIsAdmin bool) error
	GetByID(id string) (*dto.EvaluationResponse, error)
	List(query dto.ListEvaluationsQuery) (*dto.Paginated[dto.EvaluationResponse], error)
	Stats(serviceID string) (*dto.EvaluationStatsResponse, error)
}

type evaluationService struct {
	db             TxManager
	evaluationRepo repository.EvaluationRepository
	serviceRepo    repository.ServiceRepository
	criteriaRepo   repository.CriteriaRepository
}

func NewEvaluationService(
	db TxManager,
	evaluationRepo repository.EvaluationRepository,
	serviceRepo repository.ServiceRepository,
	criteriaRepo repository.CriteriaRepository,
) EvaluationService {
	return &evaluationService{
		db:             db,
		evaluationRepo: evaluationRepo,
		serviceRepo:    serviceRepo,
		criteriaRepo:   criteriaRepo,
	}
}

// Submit creates a new evaluation for a service and recomputes the service
// rating in the same transaction. At most one evaluation per (author,
// service) pair; the unique index is the source of truth and its violation
// surfaces as the duplicate error.
func (s *evaluationService) Submit(authorID string, authorIsAdmin bool, req dto.CreateEvaluationDTO) (*dto.EvaluationResponse, error) {
	if _, err := s.serviceRepo.GetByID(req.ServiceID); err != nil {
		return nil, ErrServiceNotFound
	}

	evaluation := &models.Evaluation{
		UserID:    authorID,
		ServiceID: req.ServiceID,
		Score:     req.Score,
		Comment:   req.Comment,
		Status:    initialStatus(authorIsAdmin),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.evaluationRepo.WithTx(tx).Create(evaluation); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateEvaluation
			}
			return err
		}
		return s.recomputeServiceRating(tx, req.ServiceID)
	})
	if err != nil {
		return nil, err
	}

	return dto.FromModelToEvaluationResponse(evaluation), nil
}

// SubmitDetailed creates an evaluation together with its criteria scores.
// When at least one criteria score is supplied, the weighted overall score
// replaces the caller-supplied plain score. The evaluation, all criteria
// scores and the rating update commit or roll back as one unit.
func (s *evaluationService) SubmitDetailed(authorID string, authorIsAdmin bool, req dto.CreateDetailedEvaluationDTO) (*dto.EvaluationResponse, error) {
	if _, err := s.serviceRepo.GetByID(req.ServiceID); err != nil {
		return nil, ErrServiceNotFound
	}

	score := req.Score
	if len(req.CriteriaScores) > 0 {
		weights, err := s.criteriaWeights(req.CriteriaScores)
		if err != nil {
			return nil, err
		}
		score = weightedOverallScore(req.CriteriaScores, weights)
	}

	evaluation := &models.Evaluation{
		UserID:    authorID,
		ServiceID: req.ServiceID,
		Score:     score,
		Comment:   req.Comment,
		Status:    initialStatus(authorIsAdmin),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.evaluationRepo.WithTx(tx).Create(evaluation); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateEvaluation
			}
			return err
		}

		criteriaRepo := s.criteriaRepo.WithTx(tx)
		for _, cs := range req.CriteriaScores {
			criteriaScore := &models.CriteriaScore{
				EvaluationID: evaluation.ID,
				CriteriaID:   cs.CriteriaID,
				Score:        cs.Score,
			}
			if err := criteriaRepo.CreateScore(criteriaScore); err != nil {
				return err
			}
		}

		return s.recomputeServiceRating(tx, req.ServiceID)
	})
	if err != nil {
		return nil, err
	}

	return dto.FromModelToEvaluationResponse(evaluation), nil
}

// Update patches the score/comment of the caller's own evaluation. A missing
// evaluation and someone else's evaluation both report not-found so existence
// is not leaked to non-owners.
func (s *evaluationService) Update(evaluationID, callerID string, req dto.UpdateEvaluationDTO) (*dto.EvaluationResponse, error) {
	evaluation, err := s.evaluationRepo.GetByID(evaluationID)
	if err != nil || evaluation.UserID != callerID {
		return nil, ErrEvaluationNotFound
	}

	if req.Score != nil {
		evaluation.Score = *req.Score
	}
	if req.Comment != nil {
		evaluation.Comment = *req.Comment
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.evaluationRepo.WithTx(tx).Update(evaluation); err != nil {
			return err
		}
		return s.recomputeServiceRating(tx, evaluation.ServiceID)
	})
	if err != nil {
		return nil, err
	}

	return dto.FromModelToEvaluationResponse(evaluation), nil
}

// Delete removes an evaluation (owner or admin), cascading its criteria
// scores, reports and votes, and recomputes the rating for the former
// service.
func (s *evaluationService) Delete(evaluationID, callerID string, callerIsAdmin bool) error {
	evaluation, err := s.evaluationRepo.GetByID(evaluationID)
	if err != nil {
		return ErrEvaluationNotFound
	}

	if evaluation.UserID != callerID && !callerIsAdmin {
		return ErrNotOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.evaluationRepo.WithTx(tx).Delete(evaluationID); err != nil {
			return err
		}
		return s.recomputeServiceRating(tx, evaluation.ServiceID)
	})
}

func (s *evaluationService) GetByID(id string) (*dto.EvaluationResponse, error) {
	evaluation, err := s.evaluationRepo.GetByIDWithDetails(id)
	if err != nil {
		return nil, ErrEvaluationNotFound
	}
	return dto.FromModelToEvaluationResponse(evaluation), nil
}

func (s *evaluationService) List(query dto.ListEvaluationsQuery) (*dto.Paginated[dto.EvaluationResponse], error) {
	evaluations, total, err := s.evaluationRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EvaluationResponse, 0, len(evaluations))
	for i := range evaluations {
		items = append(items, *dto.FromModelToEvaluationResponse(&evaluations[i]))
	}

	return dto.NewPaginated(items, total, query.Page, query.Limit), nil
}

// Stats aggregates evaluation statistics for one service, or globally when
// serviceID is empty.
func (s *evaluationService) Stats(serviceID string) (*dto.EvaluationStatsResponse, error) {
	if serviceID != "" {
		if _, err := s.serviceRepo.GetByID(serviceID); err != nil {
			return nil, ErrServiceNotFound
		}
	}

	total, err := s.evaluationRepo.Count(serviceID)
	if err != nil {
		return nil, err
	}

	average, err := s.evaluationRepo.CalculateAverageScore(serviceID)
	if err != nil {
		return nil, err
	}

	buckets, err := s.evaluationRepo.ScoreDistribution(serviceID)
	if err != nil {
		return nil, err
	}
	distribution := make(map[string]int, len(buckets))
	for bucket, count := range buckets {
		distribution[strconv.Itoa(bucket)] = count
	}

	stats := &dto.EvaluationStatsResponse{
		TotalCount:        total,
		AverageScore:      round1(average),
		ScoreDistribution: distribution,
	}

	// Recent trend: average of the last 30 days minus the average of the 30
	// days before that. Absent when both windows are empty.
	now := time.Now().UTC()
	recentAvg, recentCount, err := s.evaluationRepo.AverageInWindow(serviceID, now.Add(-trendWindow), now)
	if err != nil {
		return nil, err
	}
	previousAvg, previousCount, err := s.evaluationRepo.AverageInWindow(serviceID, now.Add(-2*trendWindow), now.Add(-trendWindow))
	if err != nil {
		return nil, err
	}
	if recentCount > 0 || previousCount > 0 {
		trend := round1(recentAvg - previousAvg)
		stats.RecentTrend = &trend
	}

	return stats, nil
}

// recomputeServiceRating rewrites the derived rating aggregate from the full
// evaluation set inside the caller's transaction. When the service has no
// evaluations left the previous rating is kept.
func (s *evaluationService) recomputeServiceRating(tx *gorm.DB, serviceID string) error {
	evaluationRepo := s.evaluationRepo.WithTx(tx)

	count, err := evaluationRepo.Count(serviceID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	average, err := evaluationRepo.CalculateAverageScore(serviceID)
	if err != nil {
		return err
	}

	return s.serviceRepo.WithTx(tx).UpdateRating(serviceID, average)
}

// criteriaWeights resolves the weight of every referenced criteria, failing
// when any of them does not exist.
func (s *evaluationService) criteriaWeights(scores []dto.CriteriaScoreInput) (map[string]float64, error) {
	ids := make([]string, 0, len(scores))
	seen := make(map[string]bool, len(scores))
	for _, cs := range scores {
		if !seen[cs.CriteriaID] {
			seen[cs.CriteriaID] = true
			ids = append(ids, cs.CriteriaID)
		}
	}

	criteria, err := s.criteriaRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(criteria) != len(ids) {
		return nil, ErrCriteriaNotFound
	}

	weights := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		weights[c.ID] = c.Weight
	}
	return weights, nil
}

// weightedOverallScore computes the weighted mean of the supplied criteria
// scores, rounded to one decimal place. Zero when the total weight is zero.
func weightedOverallScore(scores []dto.CriteriaScoreInput, weights map[string]float64) float64 {
	var weightedSum, totalWeight float64
	for _, cs := range scores {
		weight := weights[cs.CriteriaID]
		weightedSum += cs.Score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0.0
	}
	return round1(weightedSum / totalWeight)
}

func initialStatus(isAdmin bool) models.EvaluationStatus {
	// Admin submissions skip the moderation queue.
	if isAdmin {
		return models.EvaluationApproved
	}
	return models.EvaluationPending
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
