package service

import (
	"errors"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"

	"gorm.io/gorm"
)

type ReportService interface {
	File(reporterID string, req dto.CreateReportDTO) (*dto.ReportResponse, error)
	GetByID(id string) (*dto.ReportResponse, error)
	List(query dto.ListReportsQuery) (*dto.Paginated[dto.ReportResponse], error)
	Resolve(reportID string, req dto.ResolveReportDTO) (*dto.ReportResponse, error)
}

type reportService struct {
	db             TxManager
	reportRepo     repository.ReportRepository
	evaluationRepo repository.EvaluationRepository
	flagThreshold  int
}

// NewReportService wires the moderation workflow. flagThreshold is the number
// of unresolved reports at which an evaluation gets flagged for review.
func NewReportService(
	db TxManager,
	reportRepo repository.ReportRepository,
	evaluationRepo repository.EvaluationRepository,
	flagThreshold int,
) ReportService {
	return &reportService{
		db:             db,
		reportRepo:     reportRepo,
		evaluationRepo: evaluationRepo,
		flagThreshold:  flagThreshold,
	}
}

// File records a report against an evaluation. When the unresolved report
// count reaches the flag threshold the evaluation is flagged, in the same
// transaction as the report insert.
func (s *reportService) File(reporterID string, req dto.CreateReportDTO) (*dto.ReportResponse, error) {
	if _, err := s.evaluationRepo.GetByID(req.EvaluationID); err != nil {
		return nil, ErrEvaluationNotFound
	}

	report := &models.EvaluationReport{
		EvaluationID: req.EvaluationID,
		ReporterID:   &reporterID,
		Reason:       req.Reason,
		Description:  req.Description,
		Resolution:   models.ReportPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepo.WithTx(tx).Create(report); err != nil {
			return err
		}

		unresolved, err := s.reportRepo.WithTx(tx).CountUnresolved(req.EvaluationID, "")
		if err != nil {
			return err
		}
		if unresolved >= int64(s.flagThreshold) {
			return s.evaluationRepo.WithTx(tx).UpdateStatus(req.EvaluationID, models.EvaluationFlagged)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReportResponse(report), nil
}

func (s *reportService) GetByID(id string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetByIDWithDetails(id)
	if err != nil {
		return nil, ErrReportNotFound
	}
	return dto.FromModelToReportResponse(report), nil
}

func (s *reportService) List(query dto.ListReportsQuery) (*dto.Paginated[dto.ReportResponse], error) {
	reports, total, err := s.reportRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, *dto.FromModelToReportResponse(&reports[i]))
	}

	return dto.NewPaginated(items, total, query.Page, query.Limit), nil
}

// Resolve applies an admin decision to a pending report.
//
// Accepting a report rejects the evaluation outright. Rejecting a report
// restores the evaluation to approved only when this was the last unresolved
// report and the evaluation is currently flagged; otherwise the evaluation
// keeps its status until the remaining reports are resolved.
func (s *reportService) Resolve(reportID string, req dto.ResolveReportDTO) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, ErrReportNotFound
	}
	if report.Resolution != models.ReportPending {
		return nil, ErrReportAlreadyResolved
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update: only a still-pending report flips. A concurrent
		// resolution that committed first leaves zero rows for this one.
		if err := s.reportRepo.WithTx(tx).MarkResolved(reportID, req.Resolution); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportAlreadyResolved
			}
			return err
		}

		evaluationRepo := s.evaluationRepo.WithTx(tx)

		if req.Resolution == models.ReportAccepted {
			return evaluationRepo.UpdateStatus(report.EvaluationID, models.EvaluationRejected)
		}

		remaining, err := s.reportRepo.WithTx(tx).CountUnresolved(report.EvaluationID, report.ID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		evaluation, err := evaluationRepo.GetByID(report.EvaluationID)
		if err != nil {
			return err
		}
		if evaluation.Status == models.EvaluationFlagged {
			return evaluationRepo.UpdateStatus(report.EvaluationID, models.EvaluationApproved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Resolution = req.Resolution
	return dto.FromModelToReportResponse(report), nil
}
