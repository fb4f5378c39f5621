package service

import (
	"database/sql"
	"time"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// stubTxManager executes the transaction body directly, without a database.
type stubTxManager struct{}

func (stubTxManager) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

// --- MOCK REPOSITORIES ---

type mockEvaluationRepo struct {
	mock.Mock
}

func (m *mockEvaluationRepo) WithTx(tx *gorm.DB) repository.EvaluationRepository { return m }

func (m *mockEvaluationRepo) Create(evaluation *models.Evaluation) error {
	args := m.Called(evaluation)
	return args.Error(0)
}

func (m *mockEvaluationRepo) GetByID(id string) (*models.Evaluation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *mockEvaluationRepo) GetByIDWithDetails(id string) (*models.Evaluation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *mockEvaluationRepo) Update(evaluation *models.Evaluation) error {
	args := m.Called(evaluation)
	return args.Error(0)
}

func (m *mockEvaluationRepo) UpdateStatus(id string, status models.EvaluationStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *mockEvaluationRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockEvaluationRepo) List(query dto.ListEvaluationsQuery) ([]models.Evaluation, int64, error) {
	args := m.Called(query)
	return args.Get(0).([]models.Evaluation), args.Get(1).(int64), args.Error(2)
}

func (m *mockEvaluationRepo) CalculateAverageScore(serviceID string) (float64, error) {
	args := m.Called(serviceID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockEvaluationRepo) Count(serviceID string) (int64, error) {
	args := m.Called(serviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEvaluationRepo) AverageInWindow(serviceID string, from, to time.Time) (float64, int64, error) {
	args := m.Called(serviceID, from, to)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *mockEvaluationRepo) ScoreDistribution(serviceID string) (map[int]int, error) {
	args := m.Called(serviceID)
	return args.Get(0).(map[int]int), args.Error(1)
}

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) WithTx(tx *gorm.DB) repository.ServiceRepository { return m }

func (m *mockServiceRepo) Create(service *models.Service) error {
	args := m.Called(service)
	return args.Error(0)
}

func (m *mockServiceRepo) GetByID(id string) (*models.Service, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockServiceRepo) GetByIDWithCountry(id string) (*models.Service, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockServiceRepo) List(query dto.ListServicesQuery) ([]models.Service, int64, error) {
	args := m.Called(query)
	return args.Get(0).([]models.Service), args.Get(1).(int64), args.Error(2)
}

func (m *mockServiceRepo) UpdateRating(serviceID string, rating float64) error {
	args := m.Called(serviceID, rating)
	return args.Error(0)
}

type mockCriteriaRepo struct {
	mock.Mock
}

func (m *mockCriteriaRepo) WithTx(tx *gorm.DB) repository.CriteriaRepository { return m }

func (m *mockCriteriaRepo) Create(criteria *models.Criteria) error {
	args := m.Called(criteria)
	return args.Error(0)
}

func (m *mockCriteriaRepo) GetByID(id string) (*models.Criteria, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Criteria), args.Error(1)
}

func (m *mockCriteriaRepo) GetByIDs(ids []string) ([]models.Criteria, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Criteria), args.Error(1)
}

func (m *mockCriteriaRepo) List(query dto.ListCriteriaQuery) ([]models.Criteria, int64, error) {
	args := m.Called(query)
	return args.Get(0).([]models.Criteria), args.Get(1).(int64), args.Error(2)
}

func (m *mockCriteriaRepo) Update(criteria *models.Criteria) error {
	args := m.Called(criteria)
	return args.Error(0)
}

func (m *mockCriteriaRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockCriteriaRepo) CountScores(criteriaID string) (int64, error) {
	args := m.Called(criteriaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCriteriaRepo) CreateScore(score *models.CriteriaScore) error {
	args := m.Called(score)
	return args.Error(0)
}

func (m *mockCriteriaRepo) GetScoresByEvaluation(evaluationID string) ([]models.CriteriaScore, error) {
	args := m.Called(evaluationID)
	return args.Get(0).([]models.CriteriaScore), args.Error(1)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) WithTx(tx *gorm.DB) repository.ReportRepository { return m }

func (m *mockReportRepo) Create(report *models.EvaluationReport) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *mockReportRepo) GetByID(id string) (*models.EvaluationReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EvaluationReport), args.Error(1)
}

func (m *mockReportRepo) GetByIDWithDetails(id string) (*models.EvaluationReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EvaluationReport), args.Error(1)
}

func (m *mockReportRepo) MarkResolved(id string, resolution models.ReportResolution) error {
	args := m.Called(id, resolution)
	return args.Error(0)
}

func (m *mockReportRepo) List(query dto.ListReportsQuery) ([]models.EvaluationReport, int64, error) {
	args := m.Called(query)
	return args.Get(0).([]models.EvaluationReport), args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepo) CountUnresolved(evaluationID string, excludeReportID string) (int64, error) {
	args := m.Called(evaluationID, excludeReportID)
	return args.Get(0).(int64), args.Error(1)
}

type mockVoteRepo struct {
	mock.Mock
}

func (m *mockVoteRepo) WithTx(tx *gorm.DB) repository.VoteRepository { return m }

func (m *mockVoteRepo) Create(vote *models.EvaluationVote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *mockVoteRepo) Update(vote *models.EvaluationVote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *mockVoteRepo) Delete(evaluationID, voterID string) error {
	args := m.Called(evaluationID, voterID)
	return args.Error(0)
}

func (m *mockVoteRepo) GetByEvaluationAndVoter(evaluationID, voterID string) (*models.EvaluationVote, error) {
	args := m.Called(evaluationID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EvaluationVote), args.Error(1)
}

func (m *mockVoteRepo) ListByEvaluation(evaluationID string, isHelpful *bool, page, limit int) ([]models.EvaluationVote, int64, error) {
	args := m.Called(evaluationID, isHelpful, page, limit)
	return args.Get(0).([]models.EvaluationVote), args.Get(1).(int64), args.Error(2)
}

func (m *mockVoteRepo) CountByEvaluation(evaluationID string) (int64, int64, error) {
	args := m.Called(evaluationID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type mockCountryRepo struct {
	mock.Mock
}

func (m *mockCountryRepo) Create(country *models.Country) error {
	args := m.Called(country)
	return args.Error(0)
}

func (m *mockCountryRepo) GetByID(id string) (*models.Country, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *mockCountryRepo) GetByName(name string) (*models.Country, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *mockCountryRepo) List(query dto.ListCountriesQuery) ([]models.Country, int64, error) {
	args := m.Called(query)
	return args.Get(0).([]models.Country), args.Get(1).(int64), args.Error(2)
}

func (m *mockCountryRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockCountryRepo) CountServices(countryID string) (int64, error) {
	args := m.Called(countryID)
	return args.Get(0).(int64), args.Error(1)
}
