package services

import (
	"context"
	"fmt"
	"strings"

	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/repositories"
	"fablink/pkg/utils"

	"github.com/google/uuid"
)

const suspensionReason = "Violation of platform guidelines"

type ReportServiceInterface interface {
	SubmitReport(ctx context.Context, reporter *db_models.User, req request_models.SubmitReportRequest) (uuid.UUID, error)
	List(ctx context.Context, status db_models.ReportStatus) ([]db_models.Report, error)
	Resolve(ctx context.Context, id uuid.UUID, resolution string) error
	Dismiss(ctx context.Context, id uuid.UUID) error
	// SuspendUser suspends the reported account and resolves the report
	// atomically.
	SuspendUser(ctx context.Context, reportID uuid.UUID) error
}

type ReportService struct {
	reportRepo repositories.ReportRepository
	userRepo   repositories.UserRepository
	notifier   NotificationServiceInterface
	publisher  livefeed.Publisher
}

func NewReportService(
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	notifier NotificationServiceInterface,
	publisher livefeed.Publisher,
) ReportServiceInterface {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		publisher:  publisher,
	}
}

func (s *ReportService) SubmitReport(ctx context.Context, reporter *db_models.User, req request_models.SubmitReportRequest) (uuid.UUID, error) {
	if !db_models.ValidReportReason(req.Reason) {
		return uuid.Nil, utils.ErrInvalidReason
	}
	details := strings.TrimSpace(req.Details)
	if details == "" {
		return uuid.Nil, utils.ErrEmptyDetails
	}

	reportedID, err := uuid.Parse(req.ReportedUserID)
	if err != nil {
		return uuid.Nil, utils.ErrAccountNotFound
	}
	reported, err := s.userRepo.FindByID(ctx, reportedID)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if reported == nil {
		return uuid.Nil, utils.ErrAccountNotFound
	}

	report := &db_models.Report{
		ReporterID:       reporter.ID,
		ReporterName:     reporter.Name,
		ReportedUserID:   reported.ID,
		ReportedUserName: reported.Name,
		ReportedUserRole: reported.Role,
		Reason:           req.Reason,
		Details:          details,
		Status:           db_models.ReportPending,
	}
	if err := s.reportRepo.Insert(ctx, report); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}

	return report.ID, nil
}

func (s *ReportService) List(ctx context.Context, status db_models.ReportStatus) ([]db_models.Report, error) {
	reports, err := s.reportRepo.List(ctx, status)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return reports, nil
}

func (s *ReportService) Resolve(ctx context.Context, id uuid.UUID, resolution string) error {
	report, err := s.openReport(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reportRepo.UpdateStatus(ctx, id, db_models.ReportResolved, resolution); err != nil {
		return utils.ErrDatabaseError
	}

	s.notifier.Notify(ctx, report.ReporterID, "Report resolved",
		fmt.Sprintf("Your report against %s has been resolved", report.ReportedUserName))
	return nil
}

func (s *ReportService) Dismiss(ctx context.Context, id uuid.UUID) error {
	report, err := s.openReport(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reportRepo.UpdateStatus(ctx, id, db_models.ReportDismissed, ""); err != nil {
		return utils.ErrDatabaseError
	}

	s.notifier.Notify(ctx, report.ReporterID, "Report dismissed",
		fmt.Sprintf("Your report against %s has been reviewed and dismissed", report.ReportedUserName))
	return nil
}

func (s *ReportService) SuspendUser(ctx context.Context, reportID uuid.UUID) error {
	report, err := s.openReport(ctx, reportID)
	if err != nil {
		return err
	}

	if err := s.reportRepo.ResolveWithSuspension(ctx, reportID, report.ReportedUserID, suspensionReason); err != nil {
		return utils.ErrDatabaseError
	}

	s.notifier.Notify(ctx, report.ReportedUserID, "Account suspended", suspensionReason)
	s.notifier.Notify(ctx, report.ReporterID, "Report resolved",
		fmt.Sprintf("Action was taken against %s", report.ReportedUserName))
	s.publisher.Invalidate(livefeed.ManufacturersTopic())
	return nil
}

// openReport loads a report and rejects moderation on one already closed.
func (s *ReportService) openReport(ctx context.Context, id uuid.UUID) (*db_models.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report == nil {
		return nil, utils.ErrReportNotFound
	}
	if !report.Open() {
		return nil, utils.ErrReportClosed
	}
	return report, nil
}
