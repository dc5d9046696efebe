package repositories

import (
	"context"
	"errors"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	// CreateWithFirstMessage writes the thread and its synthesized first
	// message in one transaction.
	CreateWithFirstMessage(ctx context.Context, feedback *db_models.Feedback, first *db_models.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Feedback, error)
	FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]db_models.Feedback, error)
	FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]db_models.Feedback, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) CreateWithFirstMessage(ctx context.Context, feedback *db_models.Feedback, first *db_models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}
		first.FeedbackID = feedback.ID
		return tx.Create(first).Error
	})
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Feedback, error) {
	var feedback db_models.Feedback
	err := r.db.WithContext(ctx).First(&feedback, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]db_models.Feedback, error) {
	var items []db_models.Feedback
	err := r.db.WithContext(ctx).
		Where("consumer_id = ?", consumerID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *feedbackRepository) FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]db_models.Feedback, error) {
	var items []db_models.Feedback
	err := r.db.WithContext(ctx).
		Where("manufacturer_id = ?", manufacturerID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Feedback{}).
		Where("id = ?", id).
		Update("status", status).Error
}
