package livefeed

import (
	"errors"
	"strings"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
)

// A topic names one live query binding. Writers invalidate topics; clients
// subscribe to them and receive full snapshots.
const (
	KindConsumerFeedback     = "feedback:consumer"
	KindManufacturerFeedback = "feedback:manufacturer"
	KindFeedbackItem         = "feedback:item"
	KindThread               = "thread"
	KindNotifications        = "notifications"
	KindManufacturers        = "manufacturers"
)

func ConsumerFeedbackTopic(userID uuid.UUID) string {
	return KindConsumerFeedback + ":" + userID.String()
}

func ManufacturerFeedbackTopic(userID uuid.UUID) string {
	return KindManufacturerFeedback + ":" + userID.String()
}

func FeedbackItemTopic(feedbackID uuid.UUID) string {
	return KindFeedbackItem + ":" + feedbackID.String()
}

func ThreadTopic(feedbackID uuid.UUID) string {
	return KindThread + ":" + feedbackID.String()
}

func NotificationsTopic(userID uuid.UUID) string {
	return KindNotifications + ":" + userID.String()
}

func ManufacturersTopic() string {
	return KindManufacturers
}

// ParseTopic splits a topic into its kind and trailing ID (uuid.Nil for the
// manufacturers directory).
func ParseTopic(topic string) (string, uuid.UUID, error) {
	if topic == KindManufacturers {
		return KindManufacturers, uuid.Nil, nil
	}

	idx := strings.LastIndex(topic, ":")
	if idx < 0 {
		return "", uuid.Nil, errors.New("malformed topic")
	}

	kind, raw := topic[:idx], topic[idx+1:]
	switch kind {
	case KindConsumerFeedback, KindManufacturerFeedback, KindFeedbackItem, KindThread, KindNotifications:
	default:
		return "", uuid.Nil, errors.New("unknown topic kind")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", uuid.Nil, errors.New("malformed topic id")
	}
	return kind, id, nil
}

// Authorized reports whether a user may bind the topic. Per-user topics are
// restricted to their owner; thread and item topics are checked against the
// thread's parties by the snapshot source, so membership here is by kind.
func Authorized(userID uuid.UUID, role string, topic string) bool {
	kind, id, err := ParseTopic(topic)
	if err != nil {
		return false
	}

	switch kind {
	case KindConsumerFeedback:
		return role == db_models.RoleConsumer && id == userID
	case KindManufacturerFeedback:
		return role == db_models.RoleManufacturer && id == userID
	case KindNotifications:
		return id == userID
	case KindFeedbackItem, KindThread, KindManufacturers:
		return true
	}
	return false
}
