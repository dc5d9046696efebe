package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

var messageStatusRank = map[MessageStatus]int{
	MessageSent:      0,
	MessageDelivered: 1,
	MessageRead:      2,
}

func (s MessageStatus) Valid() bool {
	_, ok := messageStatusRank[s]
	return ok
}

// CanTransitionTo allows only forward movement. Re-applying the current
// status is treated as a no-op by callers, not a transition.
func (s MessageStatus) CanTransitionTo(next MessageStatus) bool {
	from, ok := messageStatusRank[s]
	if !ok {
		return false
	}
	to, ok := messageStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Message is one entry in a thread's log. Immutable after creation except
// for Status, which only the recipient advances.
type Message struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FeedbackID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"feedbackId"`
	SenderID    uuid.UUID      `gorm:"type:uuid;not null" json:"senderId"`
	SenderName  string         `gorm:"not null" json:"senderName"`
	SenderRole  string         `gorm:"not null" json:"senderRole"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Status      MessageStatus  `gorm:"not null;default:sent" json:"status"`
	Attachments AttachmentList `gorm:"type:jsonb" json:"attachments,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
