package service

import (
	"errors"
	"time"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"

	"gorm.io/gorm"
)

type VoteService interface {
	Cast(voterID string, req dto.CastVoteDTO) (*dto.VoteResponse, bool, error)
	Remove(evaluationID, voterID string) error
	Counts(evaluationID string) (*dto.VoteCountsResponse, error)
	MyVote(evaluationID, voterID string) (*dto.VoteResponse, error)
	ListByEvaluation(evaluationID string, isHelpful *bool, page, limit int) (*dto.Paginated[dto.VoteResponse], error)
}

type voteService struct {
	voteRepo       repository.VoteRepository
	evaluationRepo repository.EvaluationRepository
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	evaluationRepo repository.EvaluationRepository,
) VoteService {
	return &voteService{
		voteRepo:       voteRepo,
		evaluationRepo: evaluationRepo,
	}
}

// Cast records a helpful/unhelpful vote on an evaluation. A repeat vote by
// the same voter overwrites the previous direction and refreshes the
// timestamp instead of failing. The returned flag reports whether a new vote
// row was created. Voting on your own evaluation is not allowed.
func (s *voteService) Cast(voterID string, req dto.CastVoteDTO) (*dto.VoteResponse, bool, error) {
	evaluation, err := s.evaluationRepo.GetByID(req.EvaluationID)
	if err != nil {
		return nil, false, ErrEvaluationNotFound
	}
	if evaluation.UserID == voterID {
		return nil, false, ErrOwnVote
	}

	existing, err := s.voteRepo.GetByEvaluationAndVoter(req.EvaluationID, voterID)
	if err == nil {
		existing.IsHelpful = *req.IsHelpful
		existing.Timestamp = time.Now().UTC()
		if err := s.voteRepo.Update(existing); err != nil {
			return nil, false, err
		}
		return dto.FromModelToVoteResponse(existing), false, nil
	}

	vote := &models.EvaluationVote{
		EvaluationID: req.EvaluationID,
		VoterID:      &voterID,
		IsHelpful:    *req.IsHelpful,
	}
	if err := s.voteRepo.Create(vote); err != nil {
		// Concurrent first votes race past the existence check; the unique
		// index catches the loser, which then updates instead.
		if repository.IsUniqueViolation(err) {
			return s.recast(voterID, req)
		}
		return nil, false, err
	}

	return dto.FromModelToVoteResponse(vote), true, nil
}

func (s *voteService) recast(voterID string, req dto.CastVoteDTO) (*dto.VoteResponse, bool, error) {
	existing, err := s.voteRepo.GetByEvaluationAndVoter(req.EvaluationID, voterID)
	if err != nil {
		return nil, false, err
	}
	existing.IsHelpful = *req.IsHelpful
	existing.Timestamp = time.Now().UTC()
	if err := s.voteRepo.Update(existing); err != nil {
		return nil, false, err
	}
	return dto.FromModelToVoteResponse(existing), false, nil
}

func (s *voteService) Remove(evaluationID, voterID string) error {
	if err := s.voteRepo.Delete(evaluationID, voterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoteNotFound
		}
		return err
	}
	return nil
}

func (s *voteService) Counts(evaluationID string) (*dto.VoteCountsResponse, error) {
	if _, err := s.evaluationRepo.GetByID(evaluationID); err != nil {
		return nil, ErrEvaluationNotFound
	}

	helpful, unhelpful, err := s.voteRepo.CountByEvaluation(evaluationID)
	if err != nil {
		return nil, err
	}

	return &dto.VoteCountsResponse{Helpful: helpful, Unhelpful: unhelpful}, nil
}

func (s *voteService) MyVote(evaluationID, voterID string) (*dto.VoteResponse, error) {
	vote, err := s.voteRepo.GetByEvaluationAndVoter(evaluationID, voterID)
	if err != nil {
		return nil, ErrVoteNotFound
	}
	return dto.FromModelToVoteResponse(vote), nil
}

func (s *voteService) ListByEvaluation(evaluationID string, isHelpful *bool, page, limit int) (*dto.Paginated[dto.VoteResponse], error) {
	if _, err := s.evaluationRepo.GetByID(evaluationID); err != nil {
		return nil, ErrEvaluationNotFound
	}

	votes, total, err := s.voteRepo.ListByEvaluation(evaluationID, isHelpful, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VoteResponse, 0, len(votes))
	for i := range votes {
		items = append(items, *dto.FromModelToVoteResponse(&votes[i]))
	}

	return dto.NewPaginated(items, total, page, limit), nil
}
