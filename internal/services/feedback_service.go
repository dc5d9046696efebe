package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fablink/internal/blobstore"
	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/repositories"
	"fablink/pkg/utils"

	"github.com/google/uuid"
)

type FeedbackServiceInterface interface {
	CreateFeedback(ctx context.Context, consumer *db_models.User, req request_models.CreateFeedbackRequest, files []blobstore.Upload) (uuid.UUID, error)
	// GetFeedbackByID returns (nil, nil) when the thread does not exist.
	GetFeedbackByID(ctx context.Context, id uuid.UUID) (*db_models.Feedback, error)
	GetConsumerFeedback(ctx context.Context, consumerID uuid.UUID) ([]db_models.Feedback, error)
	GetManufacturerFeedback(ctx context.Context, manufacturerID uuid.UUID) ([]db_models.Feedback, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error
}

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	userRepo     repositories.UserRepository
	files        blobstore.FileStore
	notifier     NotificationServiceInterface
	publisher    livefeed.Publisher
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	userRepo repositories.UserRepository,
	files blobstore.FileStore,
	notifier NotificationServiceInterface,
	publisher livefeed.Publisher,
) FeedbackServiceInterface {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		files:        files,
		notifier:     notifier,
		publisher:    publisher,
	}
}

// CreateFeedback opens a thread. The thread record and its first message are
// written together; a subscriber can never observe one without the other.
func (s *FeedbackService) CreateFeedback(ctx context.Context, consumer *db_models.User, req request_models.CreateFeedbackRequest, files []blobstore.Upload) (uuid.UUID, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return uuid.Nil, utils.ErrEmptyMessage
	}

	manufacturerID, err := uuid.Parse(req.ManufacturerID)
	if err != nil {
		return uuid.Nil, utils.ErrManufacturerRequired
	}
	manufacturer, err := s.userRepo.FindByID(ctx, manufacturerID)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if manufacturer == nil || !manufacturer.IsManufacturer() {
		return uuid.Nil, utils.ErrManufacturerRequired
	}

	attachments, err := uploadAttachments(ctx, s.files, files)
	if err != nil {
		return uuid.Nil, err
	}

	feedback := &db_models.Feedback{
		ConsumerID:       consumer.ID,
		ConsumerName:     consumer.Name,
		ManufacturerID:   manufacturer.ID,
		ManufacturerName: manufacturer.Name,
		Message:          message,
		FeedbackType:     db_models.FeedbackType(req.FeedbackType),
		Product:          req.Product,
		Status:           db_models.FeedbackPending,
		Attachments:      attachments,
	}
	first := &db_models.Message{
		SenderID:    consumer.ID,
		SenderName:  consumer.Name,
		SenderRole:  db_models.RoleConsumer,
		Content:     message,
		Status:      db_models.MessageSent,
		Attachments: attachments,
	}

	if err := s.feedbackRepo.CreateWithFirstMessage(ctx, feedback, first); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}

	s.notifier.Notify(ctx, manufacturer.ID, "New feedback received",
		fmt.Sprintf("%s sent you a %s", consumer.Name, feedback.FeedbackType))

	s.publisher.Invalidate(livefeed.ConsumerFeedbackTopic(consumer.ID))
	s.publisher.Invalidate(livefeed.ManufacturerFeedbackTopic(manufacturer.ID))

	return feedback.ID, nil
}

func (s *FeedbackService) GetFeedbackByID(ctx context.Context, id uuid.UUID) (*db_models.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return feedback, nil
}

func (s *FeedbackService) GetConsumerFeedback(ctx context.Context, consumerID uuid.UUID) ([]db_models.Feedback, error) {
	items, err := s.feedbackRepo.FindByConsumer(ctx, consumerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return items, nil
}

func (s *FeedbackService) GetManufacturerFeedback(ctx context.Context, manufacturerID uuid.UUID) ([]db_models.Feedback, error) {
	items, err := s.feedbackRepo.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return items, nil
}

// UpdateStatus applies the transition table: forward-only, acknowledged may
// be skipped. Re-applying the current status is a no-op.
func (s *FeedbackService) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error {
	feedback, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if feedback == nil {
		return utils.ErrFeedbackNotFound
	}

	if feedback.Status == status {
		return nil
	}
	if !feedback.Status.CanTransitionTo(status) {
		return utils.ErrIllegalTransition
	}

	if err := s.feedbackRepo.UpdateStatus(ctx, id, status); err != nil {
		return utils.ErrDatabaseError
	}

	s.notifier.Notify(ctx, feedback.ConsumerID, "Feedback status updated",
		fmt.Sprintf("Your feedback to %s is now %s", feedback.ManufacturerName, status))

	s.invalidateFeedbackTopics(feedback)
	return nil
}

func (s *FeedbackService) invalidateFeedbackTopics(feedback *db_models.Feedback) {
	s.publisher.Invalidate(livefeed.ConsumerFeedbackTopic(feedback.ConsumerID))
	s.publisher.Invalidate(livefeed.ManufacturerFeedbackTopic(feedback.ManufacturerID))
	s.publisher.Invalidate(livefeed.FeedbackItemTopic(feedback.ID))
}

// uploadAttachments pushes each file to the blob store under a
// time-prefixed key and collects the attachment metadata.
func uploadAttachments(ctx context.Context, store blobstore.FileStore, files []blobstore.Upload) (db_models.AttachmentList, error) {
	if len(files) == 0 {
		return nil, nil
	}

	attachments := make(db_models.AttachmentList, 0, len(files))
	for _, f := range files {
		key := blobstore.AttachmentKey(f.Name, time.Now())
		url, err := store.Store(ctx, key, f.ContentType, f.Body)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		attachments = append(attachments, db_models.Attachment{
			ID:   uuid.NewString(),
			Name: f.Name,
			Type: f.ContentType,
			URL:  url,
		})
	}
	return attachments, nil
}
