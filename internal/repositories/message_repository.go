package repositories

import (
	"context"
	"errors"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Insert(ctx context.Context, message *db_models.Message) error
	// InsertWithFeedbackStatus writes the message and the parent thread's
	// new status in one transaction (the manufacturer-reply side effect).
	InsertWithFeedbackStatus(ctx context.Context, message *db_models.Message, status db_models.FeedbackStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Message, error)
	FindByFeedbackID(ctx context.Context, feedbackID uuid.UUID) ([]db_models.Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.MessageStatus) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Insert(ctx context.Context, message *db_models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) InsertWithFeedbackStatus(ctx context.Context, message *db_models.Message, status db_models.FeedbackStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.Feedback{}).
			Where("id = ?", message.FeedbackID).
			Update("status", status).Error
	})
}

func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Message, error) {
	var message db_models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByFeedbackID(ctx context.Context, feedbackID uuid.UUID) ([]db_models.Message, error) {
	var messages []db_models.Message
	err := r.db.WithContext(ctx).
		Where("feedback_id = ?", feedbackID).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.MessageStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Message{}).
		Where("id = ?", id).
		Update("status", status).Error
}
