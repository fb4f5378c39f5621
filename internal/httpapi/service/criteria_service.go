package service

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"
)

const defaultCriteriaWeight = 1.0

type CriteriaService interface {
	Create(req dto.CreateCriteriaDTO) (*dto.CriteriaResponse, error)
	GetByID(id string) (*dto.CriteriaResponse, error)
	List(query dto.ListCriteriaQuery) (*dto.Paginated[dto.CriteriaResponse], error)
	Update(id string, req dto.UpdateCriteriaDTO) (*dto.CriteriaResponse, error)
	Delete(id string) error
	RecordScore(req dto.CreateCriteriaScoreDTO) (*dto.CriteriaScoreResponse, error)
	GetScores(evaluationID string) ([]dto.CriteriaScoreResponse, error)
	ComputeOverallScore(evaluationID string) (float64, error)
}

type criteriaService struct {
	criteriaRepo   repository.CriteriaRepository
	evaluationRepo repository.EvaluationRepository
}

func NewCriteriaService(
	criteriaRepo repository.CriteriaRepository,
	evaluationRepo repository.EvaluationRepository,
) CriteriaService {
	return &criteriaService{
		criteriaRepo:   criteriaRepo,
		evaluationRepo: evaluationRepo,
	}
}

func (s *criteriaService) Create(req dto.CreateCriteriaDTO) (*dto.CriteriaResponse, error) {
	weight := defaultCriteriaWeight
	if req.Weight != nil {
		weight = *req.Weight
	}

	criteria := &models.Criteria{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Weight:      weight,
	}

	if err := s.criteriaRepo.Create(criteria); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return dto.FromModelToCriteriaResponse(criteria), nil
}

func (s *criteriaService) GetByID(id string) (*dto.CriteriaResponse, error) {
	criteria, err := s.criteriaRepo.GetByID(id)
	if err != nil {
		return nil, ErrCriteriaNotFound
	}
	return dto.FromModelToCriteriaResponse(criteria), nil
}

func (s *criteriaService) List(query dto.ListCriteriaQuery) (*dto.Paginated[dto.CriteriaResponse], error) {
	criteria, total, err := s.criteriaRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CriteriaResponse, 0, len(criteria))
	for i := range criteria {
		items = append(items, *dto.FromModelToCriteriaResponse(&criteria[i]))
	}

	return dto.NewPaginated(items, total, query.Page, query.Limit), nil
}

func (s *criteriaService) Update(id string, req dto.UpdateCriteriaDTO) (*dto.CriteriaResponse, error) {
	criteria, err := s.criteriaRepo.GetByID(id)
	if err != nil {
		return nil, ErrCriteriaNotFound
	}

	if req.Name != nil {
		criteria.Name = *req.Name
	}
	if req.Description != nil {
		criteria.Description = *req.Description
	}
	if req.Category != nil {
		criteria.Category = *req.Category
	}
	if req.Weight != nil {
		criteria.Weight = *req.Weight
	}

	if err := s.criteriaRepo.Update(criteria); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return dto.FromModelToCriteriaResponse(criteria), nil
}

// Delete removes a criteria. Blocked while any evaluation score references
// it, so historical weighted scores stay reproducible.
func (s *criteriaService) Delete(id string) error {
	if _, err := s.criteriaRepo.GetByID(id); err != nil {
		return ErrCriteriaNotFound
	}

	count, err := s.criteriaRepo.CountScores(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCriteriaInUse
	}

	return s.criteriaRepo.Delete(id)
}

// RecordScore attaches a single criteria score to an existing evaluation.
func (s *criteriaService) RecordScore(req dto.CreateCriteriaScoreDTO) (*dto.CriteriaScoreResponse, error) {
	if _, err := s.evaluationRepo.GetByID(req.EvaluationID); err != nil {
		return nil, ErrEvaluationNotFound
	}
	if _, err := s.criteriaRepo.GetByID(req.CriteriaID); err != nil {
		return nil, ErrCriteriaNotFound
	}

	score := &models.CriteriaScore{
		EvaluationID: req.EvaluationID,
		CriteriaID:   req.CriteriaID,
		Score:        req.Score,
	}

	if err := s.criteriaRepo.CreateScore(score); err != nil {
		return nil, err
	}

	return dto.FromModelToCriteriaScoreResponse(score), nil
}

func (s *criteriaService) GetScores(evaluationID string) ([]dto.CriteriaScoreResponse, error) {
	if _, err := s.evaluationRepo.GetByID(evaluationID); err != nil {
		return nil, ErrEvaluationNotFound
	}

	scores, err := s.criteriaRepo.GetScoresByEvaluation(evaluationID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CriteriaScoreResponse, 0, len(scores))
	for i := range scores {
		items = append(items, *dto.FromModelToCriteriaScoreResponse(&scores[i]))
	}
	return items, nil
}

// ComputeOverallScore recomputes the weighted mean over the criteria scores
// currently recorded for an evaluation.
func (s *criteriaService) ComputeOverallScore(evaluationID string) (float64, error) {
	if _, err := s.evaluationRepo.GetByID(evaluationID); err != nil {
		return 0, ErrEvaluationNotFound
	}

	scores, err := s.criteriaRepo.GetScoresByEvaluation(evaluationID)
	if err != nil {
		return 0, err
	}

	var weightedSum, totalWeight float64
	for _, score := range scores {
		weightedSum += score.Score * score.Criteria.Weight
		totalWeight += score.Criteria.Weight
	}

	if totalWeight == 0 {
		return 0.0, nil
	}
	return round1(weightedSum / totalWeight), nil
}
