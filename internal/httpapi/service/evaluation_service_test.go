package service

import (
	"testing"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newEvaluationService(evaluationRepo *mockEvaluationRepo, serviceRepo *mockServiceRepo, criteriaRepo *mockCriteriaRepo) EvaluationService {
	return NewEvaluationService(stubTxManager{}, evaluationRepo, serviceRepo, criteriaRepo)
}

func TestEvaluationService_Submit(t *testing.T) {
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"
	userID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	t.Run("Success", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		evaluationRepo.On("Create", mock.AnythingOfType("*models.Evaluation")).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(2), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(7.0, nil).Once()
		serviceRepo.On("UpdateRating", serviceID, 7.0).Return(nil).Once()

		resp, err := svc.Submit(userID, false, dto.CreateEvaluationDTO{
			ServiceID: serviceID,
			Score:     8.0,
			Comment:   "quick and friendly",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.EvaluationPending, resp.Status)
		assert.Equal(t, 8.0, resp.Score)
		evaluationRepo.AssertExpectations(t)
		serviceRepo.AssertExpectations(t)
	})

	t.Run("AdminSubmissionIsApproved", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		evaluationRepo.On("Create", mock.AnythingOfType("*models.Evaluation")).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(1), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(9.0, nil).Once()
		serviceRepo.On("UpdateRating", serviceID, 9.0).Return(nil).Once()

		resp, err := svc.Submit(userID, true, dto.CreateEvaluationDTO{ServiceID: serviceID, Score: 9.0})

		assert.NoError(t, err)
		assert.Equal(t, models.EvaluationApproved, resp.Status)
	})

	t.Run("ServiceNotFound", func(t *testing.T) {
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(new(mockEvaluationRepo), serviceRepo, new(mockCriteriaRepo))

		serviceRepo.On("GetByID", serviceID).Return(nil, assert.AnError).Once()

		_, err := svc.Submit(userID, false, dto.CreateEvaluationDTO{ServiceID: serviceID, Score: 5.0})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("DuplicateEvaluation", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		evaluationRepo.On("Create", mock.AnythingOfType("*models.Evaluation")).
			Return(&pgconn.PgError{Code: "23505"}).Once()

		_, err := svc.Submit(userID, false, dto.CreateEvaluationDTO{ServiceID: serviceID, Score: 5.0})
		assert.ErrorIs(t, err, ErrDuplicateEvaluation)
		serviceRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything)
	})
}

func TestEvaluationService_SubmitDetailed(t *testing.T) {
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"
	userID := "5f0f7a9e-0000-0000-0000-0000000000aa"
	speedID := "5f0f7a9e-0000-0000-0000-0000000000c1"
	clarityID := "5f0f7a9e-0000-0000-0000-0000000000c2"

	t.Run("WeightedOverallReplacesPlainScore", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		criteriaRepo := new(mockCriteriaRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, criteriaRepo)

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		criteriaRepo.On("GetByIDs", []string{speedID, clarityID}).Return([]models.Criteria{
			{ID: speedID, Weight: 2.0},
			{ID: clarityID, Weight: 1.0},
		}, nil).Once()
		evaluationRepo.On("Create", mock.AnythingOfType("*models.Evaluation")).Return(nil).Once()
		criteriaRepo.On("CreateScore", mock.AnythingOfType("*models.CriteriaScore")).Return(nil).Twice()
		evaluationRepo.On("Count", serviceID).Return(int64(1), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(7.0, nil).Once()
		serviceRepo.On("UpdateRating", serviceID, 7.0).Return(nil).Once()

		// (8*2 + 5*1) / 3 = 7.0
		resp, err := svc.SubmitDetailed(userID, false, dto.CreateDetailedEvaluationDTO{
			ServiceID: serviceID,
			Score:     3.0,
			CriteriaScores: []dto.CriteriaScoreInput{
				{CriteriaID: speedID, Score: 8.0},
				{CriteriaID: clarityID, Score: 5.0},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, 7.0, resp.Score)
		criteriaRepo.AssertExpectations(t)
	})

	t.Run("NoCriteriaScoresKeepsPlainScore", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		criteriaRepo := new(mockCriteriaRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, criteriaRepo)

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		evaluationRepo.On("Create", mock.AnythingOfType("*models.Evaluation")).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(1), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(6.5, nil).Once()
		serviceRepo.On("UpdateRating", serviceID, 6.5).Return(nil).Once()

		resp, err := svc.SubmitDetailed(userID, false, dto.CreateDetailedEvaluationDTO{
			ServiceID: serviceID,
			Score:     6.5,
		})

		assert.NoError(t, err)
		assert.Equal(t, 6.5, resp.Score)
		criteriaRepo.AssertNotCalled(t, "GetByIDs", mock.Anything)
	})

	t.Run("UnknownCriteria", func(t *testing.T) {
		serviceRepo := new(mockServiceRepo)
		criteriaRepo := new(mockCriteriaRepo)
		svc := newEvaluationService(new(mockEvaluationRepo), serviceRepo, criteriaRepo)

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		criteriaRepo.On("GetByIDs", []string{speedID}).Return([]models.Criteria{}, nil).Once()

		_, err := svc.SubmitDetailed(userID, false, dto.CreateDetailedEvaluationDTO{
			ServiceID:      serviceID,
			CriteriaScores: []dto.CriteriaScoreInput{{CriteriaID: speedID, Score: 8.0}},
		})
		assert.ErrorIs(t, err, ErrCriteriaNotFound)
	})
}

func TestWeightedOverallScore(t *testing.T) {
	speedID := "c1"
	clarityID := "c2"

	t.Run("WeightedMeanRoundedToOneDecimal", func(t *testing.T) {
		score := weightedOverallScore(
			[]dto.CriteriaScoreInput{
				{CriteriaID: speedID, Score: 8.0},
				{CriteriaID: clarityID, Score: 5.0},
			},
			map[string]float64{speedID: 2.0, clarityID: 1.0},
		)
		assert.Equal(t, 7.0, score)
	})

	t.Run("RoundsHalfUp", func(t *testing.T) {
		score := weightedOverallScore(
			[]dto.CriteriaScoreInput{
				{CriteriaID: speedID, Score: 7.0},
				{CriteriaID: clarityID, Score: 8.0},
			},
			map[string]float64{speedID: 1.0, clarityID: 1.0},
		)
		assert.Equal(t, 7.5, score)
	})

	t.Run("ZeroTotalWeight", func(t *testing.T) {
		score := weightedOverallScore(
			[]dto.CriteriaScoreInput{{CriteriaID: speedID, Score: 9.0}},
			map[string]float64{},
		)
		assert.Equal(t, 0.0, score)
	})
}

func TestEvaluationService_Update(t *testing.T) {
	evaluationID := "5f0f7a9e-0000-0000-0000-0000000000e1"
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"
	ownerID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	t.Run("OwnerUpdatesScoreAndRatingRecomputes", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		evaluationRepo.On("GetByID", evaluationID).Return(&models.Evaluation{
			ID: evaluationID, UserID: ownerID, ServiceID: serviceID, Score: 6.0,
		}, nil).Once()
		evaluationRepo.On("Update", mock.AnythingOfType("*models.Evaluation")).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(1), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(10.0, nil).Once()
		serviceRepo.On("UpdateRating", serviceID, 10.0).Return(nil).Once()

		newScore := 10.0
		resp, err := svc.Update(evaluationID, ownerID, dto.UpdateEvaluationDTO{Score: &newScore})

		assert.NoError(t, err)
		assert.Equal(t, 10.0, resp.Score)
		serviceRepo.AssertExpectations(t)
	})

	t.Run("NonOwnerGetsNotFound", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		svc := newEvaluationService(evaluationRepo, new(mockServiceRepo), new(mockCriteriaRepo))

		evaluationRepo.On("GetByID", evaluationID).Return(&models.Evaluation{
			ID: evaluationID, UserID: ownerID, ServiceID: serviceID,
		}, nil).Once()

		newScore := 1.0
		_, err := svc.Update(evaluationID, "someone-else", dto.UpdateEvaluationDTO{Score: &newScore})
		assert.ErrorIs(t, err, ErrEvaluationNotFound)
	})
}

func TestEvaluationService_Delete(t *testing.T) {
	evaluationID := "5f0f7a9e-0000-0000-0000-0000000000e1"
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"
	ownerID := "5f0f7a9e-0000-0000-0000-0000000000aa"

	t.Run("OwnerDeletes", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		evaluationRepo.On("GetByID", evaluationID).Return(&models.Evaluation{
			ID: evaluationID, UserID: ownerID, ServiceID: serviceID,
		}, nil).Once()
		evaluationRepo.On("Delete", evaluationID).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(1), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(4.0, nil).Once()
		serviceRepo.On("UpdateRating", serviceID, 4.0).Return(nil).Once()

		assert.NoError(t, svc.Delete(evaluationID, ownerID, false))
	})

	t.Run("LastEvaluationKeepsPreviousRating", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		evaluationRepo.On("GetByID", evaluationID).Return(&models.Evaluation{
			ID: evaluationID, UserID: ownerID, ServiceID: serviceID,
		}, nil).Once()
		evaluationRepo.On("Delete", evaluationID).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(0), nil).Once()

		assert.NoError(t, svc.Delete(evaluationID, ownerID, false))
		serviceRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		svc := newEvaluationService(evaluationRepo, new(mockServiceRepo), new(mockCriteriaRepo))

		evaluationRepo.On("GetByID", evaluationID).Return(&models.Evaluation{
			ID: evaluationID, UserID: ownerID, ServiceID: serviceID,
		}, nil).Once()

		err := svc.Delete(evaluationID, "someone-else", false)
		assert.ErrorIs(t, err, ErrNotOwner)
		evaluationRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("AdminDeletesAnyEvaluation", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		evaluationRepo.On("GetByID", evaluationID).Return(&models.Evaluation{
			ID: evaluationID, UserID: ownerID, ServiceID: serviceID,
		}, nil).Once()
		evaluationRepo.On("Delete", evaluationID).Return(nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(0), nil).Once()

		assert.NoError(t, svc.Delete(evaluationID, "admin-user", true))
	})
}

func TestEvaluationService_Stats(t *testing.T) {
	serviceID := "5f0f7a9e-0000-0000-0000-000000000001"

	t.Run("PerService", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(3), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(7.333333, nil).Once()
		evaluationRepo.On("ScoreDistribution", serviceID).Return(map[int]int{7: 2, 8: 1}, nil).Once()
		evaluationRepo.On("AverageInWindow", serviceID, mock.Anything, mock.Anything).
			Return(8.0, int64(2), nil).Once()
		evaluationRepo.On("AverageInWindow", serviceID, mock.Anything, mock.Anything).
			Return(6.0, int64(1), nil).Once()

		stats, err := svc.Stats(serviceID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalCount)
		assert.Equal(t, 7.3, stats.AverageScore)
		assert.Equal(t, map[string]int{"7": 2, "8": 1}, stats.ScoreDistribution)
		if assert.NotNil(t, stats.RecentTrend) {
			assert.Equal(t, 2.0, *stats.RecentTrend)
		}
	})

	t.Run("NoEvaluationsInEitherWindowOmitsTrend", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		serviceRepo.On("GetByID", serviceID).Return(&models.Service{ID: serviceID}, nil).Once()
		evaluationRepo.On("Count", serviceID).Return(int64(0), nil).Once()
		evaluationRepo.On("CalculateAverageScore", serviceID).Return(0.0, nil).Once()
		evaluationRepo.On("ScoreDistribution", serviceID).Return(map[int]int{}, nil).Once()
		evaluationRepo.On("AverageInWindow", serviceID, mock.Anything, mock.Anything).
			Return(0.0, int64(0), nil).Twice()

		stats, err := svc.Stats(serviceID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalCount)
		assert.Nil(t, stats.RecentTrend)
	})

	t.Run("GlobalStatsSkipServiceLookup", func(t *testing.T) {
		evaluationRepo := new(mockEvaluationRepo)
		serviceRepo := new(mockServiceRepo)
		svc := newEvaluationService(evaluationRepo, serviceRepo, new(mockCriteriaRepo))

		evaluationRepo.On("Count", "").Return(int64(10), nil).Once()
		evaluationRepo.On("CalculateAverageScore", "").Return(6.0, nil).Once()
		evaluationRepo.On("ScoreDistribution", "").Return(map[int]int{6: 10}, nil).Once()
		evaluationRepo.On("AverageInWindow", "", mock.Anything, mock.Anything).
			Return(6.0, int64(10), nil).Twice()

		stats, err := svc.Stats("")

		assert.NoError(t, err)
		assert.Equal(t, int64(10), stats.TotalCount)
		serviceRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})
}
