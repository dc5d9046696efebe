package services

import (
	"context"
	"log"

	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/internal/repositories"

	"github.com/google/uuid"
)

type NotificationServiceInterface interface {
	// Notify is best-effort: a failed alert never fails the write that
	// triggered it.
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        livefeed.Publisher
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, publisher livefeed.Publisher) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	n := &db_models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Insert(ctx, n); err != nil {
		log.Printf("ERROR: failed to create notification for %s: %v", userID, err)
		return
	}
	s.publisher.Invalidate(livefeed.NotificationsTopic(userID))
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error) {
	return s.notificationRepo.FindByUser(ctx, userID, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.publisher.Invalidate(livefeed.NotificationsTopic(userID))
	return nil
}
