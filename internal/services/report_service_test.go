package services

import (
	"context"
	"testing"

	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReportFixture() (*ReportService, *MockReportRepository, *MockUserRepository, *recordingNotifier) {
	reportRepo := new(MockReportRepository)
	userRepo := new(MockUserRepository)
	notifier := &recordingNotifier{}
	svc := NewReportService(reportRepo, userRepo, notifier, &recordingPublisher{}).(*ReportService)
	return svc, reportRepo, userRepo, notifier
}

func pendingReportFixture() *db_models.Report {
	return &db_models.Report{
		ID:               uuid.New(),
		ReporterID:       uuid.New(),
		ReportedUserID:   uuid.New(),
		ReportedUserName: "Acme",
		Reason:           "Spam",
		Details:          "Sends the same message daily",
		Status:           db_models.ReportPending,
	}
}

func TestSubmitReport(t *testing.T) {
	svc, reportRepo, userRepo, _ := newReportFixture()
	reporter := consumerFixture()
	reported := manufacturerFixture()

	userRepo.On("FindByID", mock.Anything, reported.ID).Return(reported, nil)
	reportRepo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*db_models.Report)
			r.ID = uuid.New()
			assert.Equal(t, db_models.ReportPending, r.Status)
			assert.Equal(t, reported.Name, r.ReportedUserName)
			assert.Equal(t, reported.Role, r.ReportedUserRole)
		}).Return(nil)

	id, err := svc.SubmitReport(context.Background(), reporter, request_models.SubmitReportRequest{
		ReportedUserID: reported.ID.String(),
		Reason:         "Harassment",
		Details:        "Abusive replies in a thread",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	reportRepo.AssertExpectations(t)
}

func TestSubmitReportInvalidReason(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	_, err := svc.SubmitReport(context.Background(), consumerFixture(), request_models.SubmitReportRequest{
		ReportedUserID: uuid.NewString(),
		Reason:         "I just dislike them",
		Details:        "n/a",
	})

	assert.ErrorIs(t, err, utils.ErrInvalidReason)
}

func TestSubmitReportEmptyDetails(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	_, err := svc.SubmitReport(context.Background(), consumerFixture(), request_models.SubmitReportRequest{
		ReportedUserID: uuid.NewString(),
		Reason:         "Other",
		Details:        "   ",
	})

	assert.ErrorIs(t, err, utils.ErrEmptyDetails)
}

func TestResolveReport(t *testing.T) {
	svc, reportRepo, _, notifier := newReportFixture()
	report := pendingReportFixture()

	reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
	reportRepo.On("UpdateStatus", mock.Anything, report.ID, db_models.ReportResolved, "warning issued").Return(nil)

	err := svc.Resolve(context.Background(), report.ID, "warning issued")

	assert.NoError(t, err)
	assert.True(t, notifier.notified(report.ReporterID))
	reportRepo.AssertExpectations(t)
}

func TestDismissClosedReportRejected(t *testing.T) {
	svc, reportRepo, _, _ := newReportFixture()
	report := pendingReportFixture()
	report.Status = db_models.ReportResolved

	reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)

	err := svc.Dismiss(context.Background(), report.ID)

	assert.ErrorIs(t, err, utils.ErrReportClosed)
	reportRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSuspendUser(t *testing.T) {
	svc, reportRepo, _, notifier := newReportFixture()
	report := pendingReportFixture()

	reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
	reportRepo.On("ResolveWithSuspension", mock.Anything, report.ID, report.ReportedUserID, suspensionReason).Return(nil)

	err := svc.SuspendUser(context.Background(), report.ID)

	assert.NoError(t, err)
	assert.True(t, notifier.notified(report.ReportedUserID))
	assert.True(t, notifier.notified(report.ReporterID))
	reportRepo.AssertExpectations(t)
}

func TestSuspendUserReportNotFound(t *testing.T) {
	svc, reportRepo, _, _ := newReportFixture()
	id := uuid.New()

	reportRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	err := svc.SuspendUser(context.Background(), id)

	assert.ErrorIs(t, err, utils.ErrReportNotFound)
}
