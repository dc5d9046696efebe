package services

import (
	"context"
	"io"
	"sync"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user *db_models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *db_models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string) ([]db_models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.User), args.Error(1)
}

// MockFeedbackRepository is a mock implementation of repositories.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) CreateWithFirstMessage(ctx context.Context, feedback *db_models.Feedback, first *db_models.Message) error {
	args := m.Called(ctx, feedback, first)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]db_models.Feedback, error) {
	args := m.Called(ctx, consumerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]db_models.Feedback, error) {
	args := m.Called(ctx, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of repositories.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Insert(ctx context.Context, message *db_models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) InsertWithFeedbackStatus(ctx context.Context, message *db_models.Message, status db_models.FeedbackStatus) error {
	args := m.Called(ctx, message, status)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Message), args.Error(1)
}

func (m *MockMessageRepository) FindByFeedbackID(ctx context.Context, feedbackID uuid.UUID) ([]db_models.Message, error) {
	args := m.Called(ctx, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Message), args.Error(1)
}

func (m *MockMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.MessageStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of repositories.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, report *db_models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, status db_models.ReportStatus) ([]db_models.Report, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ReportStatus, resolution string) error {
	args := m.Called(ctx, id, status, resolution)
	return args.Error(0)
}

func (m *MockReportRepository) ResolveWithSuspension(ctx context.Context, reportID, userID uuid.UUID, reason string) error {
	args := m.Called(ctx, reportID, userID, reason)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of repositories.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, notification *db_models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// recordingNotifier captures Notify calls without hitting a repository.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	userID uuid.UUID
	title  string
}

func (r *recordingNotifier) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notifyCall{userID: userID, title: title})
}

func (r *recordingNotifier) List(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error) {
	return nil, nil
}

func (r *recordingNotifier) MarkRead(ctx context.Context, id uuid.UUID) error    { return nil }
func (r *recordingNotifier) MarkAllRead(ctx context.Context, id uuid.UUID) error { return nil }

func (r *recordingNotifier) notified(userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c.userID == userID {
			return true
		}
	}
	return false
}

// recordingPublisher captures invalidated topics.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (r *recordingPublisher) Invalidate(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
}

func (r *recordingPublisher) invalidated(topic string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.topics {
		if t == topic {
			return true
		}
	}
	return false
}

// stubFileStore returns a deterministic URL per stored key.
type stubFileStore struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (s *stubFileStore) Store(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return "https://files.test/" + key, nil
}
