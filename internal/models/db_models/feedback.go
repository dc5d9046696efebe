package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackStatus string

const (
	FeedbackPending      FeedbackStatus = "pending"
	FeedbackAcknowledged FeedbackStatus = "acknowledged"
	FeedbackResponded    FeedbackStatus = "responded"
)

type FeedbackType string

const (
	TypeSuggestion FeedbackType = "suggestion"
	TypeComplaint  FeedbackType = "complaint"
	TypePraise     FeedbackType = "praise"
)

// feedbackStatusRank orders the lifecycle. A transition is legal only when it
// moves strictly forward; acknowledged may be skipped.
var feedbackStatusRank = map[FeedbackStatus]int{
	FeedbackPending:      0,
	FeedbackAcknowledged: 1,
	FeedbackResponded:    2,
}

func (s FeedbackStatus) Valid() bool {
	_, ok := feedbackStatusRank[s]
	return ok
}

func (s FeedbackStatus) CanTransitionTo(next FeedbackStatus) bool {
	from, ok := feedbackStatusRank[s]
	if !ok {
		return false
	}
	to, ok := feedbackStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

func (t FeedbackType) Valid() bool {
	switch t {
	case TypeSuggestion, TypeComplaint, TypePraise:
		return true
	}
	return false
}

// Feedback is one consumer-to-manufacturer thread. Its initial message is
// duplicated into the messages table when the thread is created.
type Feedback struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ConsumerID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"consumerId"`
	ConsumerName     string         `gorm:"not null" json:"consumerName"`
	ManufacturerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"manufacturerId"`
	ManufacturerName string         `gorm:"not null" json:"manufacturerName"`
	Message          string         `gorm:"type:text;not null" json:"message"`
	FeedbackType     FeedbackType   `gorm:"not null" json:"feedbackType"`
	Product          string         `json:"product,omitempty"`
	Status           FeedbackStatus `gorm:"not null;default:pending" json:"status"`
	Attachments      AttachmentList `gorm:"type:jsonb" json:"attachments,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
