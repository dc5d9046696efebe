package repositories

import (
	"context"
	"errors"
	"time"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Insert(ctx context.Context, report *db_models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Report, error)
	List(ctx context.Context, status db_models.ReportStatus) ([]db_models.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ReportStatus, resolution string) error
	// ResolveWithSuspension suspends the reported user and resolves the
	// report in one transaction.
	ResolveWithSuspension(ctx context.Context, reportID, userID uuid.UUID, reason string) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, report *db_models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Report, error) {
	var report db_models.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// List returns reports newest first. An empty status means no filter.
func (r *reportRepository) List(ctx context.Context, status db_models.ReportStatus) ([]db_models.Report, error) {
	var reports []db_models.Report
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&reports).Error
	return reports, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ReportStatus, resolution string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if resolution != "" {
		updates["resolution"] = resolution
	}
	return r.db.WithContext(ctx).
		Model(&db_models.Report{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *reportRepository) ResolveWithSuspension(ctx context.Context, reportID, userID uuid.UUID, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db_models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"suspended":        true,
				"suspended_at":     now,
				"suspended_reason": reason,
			}).Error
		if err != nil {
			return err
		}
		return tx.Model(&db_models.Report{}).
			Where("id = ?", reportID).
			Updates(map[string]interface{}{
				"status":     db_models.ReportResolved,
				"resolution": db_models.ResolutionUserSuspended,
				"updated_at": now,
			}).Error
	})
}
