package services

import (
	"context"
	"errors"

	"fablink/internal/livefeed"
	"fablink/pkg/utils"

	"github.com/google/uuid"
)

const notificationSnapshotLimit = 20

// LiveQueryResolver maps topics to their current result sets. Thread
// snapshots go through MessageService.GetThread so read receipts fire for
// the subscribed viewer on every delivery.
type LiveQueryResolver struct {
	accountService      AccountServiceInterface
	feedbackService     FeedbackServiceInterface
	messageService      MessageServiceInterface
	notificationService NotificationServiceInterface
}

func NewLiveQueryResolver(
	accountService AccountServiceInterface,
	feedbackService FeedbackServiceInterface,
	messageService MessageServiceInterface,
	notificationService NotificationServiceInterface,
) livefeed.SnapshotSource {
	return &LiveQueryResolver{
		accountService:      accountService,
		feedbackService:     feedbackService,
		messageService:      messageService,
		notificationService: notificationService,
	}
}

func (r *LiveQueryResolver) Fetch(ctx context.Context, viewerID uuid.UUID, topic string) (interface{}, error) {
	kind, id, err := livefeed.ParseTopic(topic)
	if err != nil {
		return nil, err
	}

	switch kind {
	case livefeed.KindConsumerFeedback:
		return r.feedbackService.GetConsumerFeedback(ctx, id)

	case livefeed.KindManufacturerFeedback:
		return r.feedbackService.GetManufacturerFeedback(ctx, id)

	case livefeed.KindFeedbackItem:
		feedback, err := r.feedbackService.GetFeedbackByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if feedback == nil {
			return nil, utils.ErrFeedbackNotFound
		}
		return feedback, nil

	case livefeed.KindThread:
		messages, err := r.messageService.GetThread(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
		return r.messageService.GroupByDate(messages), nil

	case livefeed.KindNotifications:
		return r.notificationService.List(ctx, id, notificationSnapshotLimit)

	case livefeed.KindManufacturers:
		return r.accountService.ListManufacturers(ctx)
	}

	return nil, errors.New("unsupported topic kind")
}
