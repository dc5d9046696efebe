package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

const ResolutionUserSuspended = "user_suspended"

// ReportReasons is the closed option set offered by the report form.
var ReportReasons = []string{
	"Inappropriate behavior",
	"Harassment",
	"Spam",
	"Inappropriate content",
	"Fake account",
	"Other",
}

func ValidReportReason(reason string) bool {
	for _, r := range ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Report starts pending and moves exactly once to resolved or dismissed.
type Report struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID       uuid.UUID    `gorm:"type:uuid;not null" json:"reporterId"`
	ReporterName     string       `gorm:"not null" json:"reporterName"`
	ReportedUserID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"reportedUserId"`
	ReportedUserName string       `gorm:"not null" json:"reportedUserName"`
	ReportedUserRole string       `gorm:"not null" json:"reportedUserRole"`
	Reason           string       `gorm:"not null" json:"reason"`
	Details          string       `gorm:"type:text;not null" json:"details"`
	Status           ReportStatus `gorm:"not null;default:pending;index" json:"status"`
	Resolution       string       `json:"resolution,omitempty"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Report) Open() bool {
	return r.Status == ReportPending
}
