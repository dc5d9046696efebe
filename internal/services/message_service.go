package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fablink/internal/blobstore"
	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/models/response_models"
	"fablink/internal/repositories"
	"fablink/pkg/utils"

	"github.com/google/uuid"
)

type MessageServiceInterface interface {
	AddMessage(ctx context.Context, sender *db_models.User, req request_models.AddMessageRequest, files []blobstore.Upload) (uuid.UUID, error)
	// GetThread returns the log oldest-first and, as a side effect, marks
	// the other party's unread messages read for this viewer.
	GetThread(ctx context.Context, viewerID uuid.UUID, feedbackID uuid.UUID) ([]db_models.Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.MessageStatus) error
	GroupByDate(messages []db_models.Message) []response_models.MessageGroup
}

type MessageService struct {
	messageRepo  repositories.MessageRepository
	feedbackRepo repositories.FeedbackRepository
	files        blobstore.FileStore
	notifier     NotificationServiceInterface
	publisher    livefeed.Publisher
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	feedbackRepo repositories.FeedbackRepository,
	files blobstore.FileStore,
	notifier NotificationServiceInterface,
	publisher livefeed.Publisher,
) MessageServiceInterface {
	return &MessageService{
		messageRepo:  messageRepo,
		feedbackRepo: feedbackRepo,
		files:        files,
		notifier:     notifier,
		publisher:    publisher,
	}
}

func (s *MessageService) AddMessage(ctx context.Context, sender *db_models.User, req request_models.AddMessageRequest, files []blobstore.Upload) (uuid.UUID, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return uuid.Nil, utils.ErrEmptyMessage
	}

	feedbackID, err := uuid.Parse(req.FeedbackID)
	if err != nil {
		return uuid.Nil, utils.ErrFeedbackNotFound
	}
	feedback, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if feedback == nil {
		return uuid.Nil, utils.ErrFeedbackNotFound
	}

	attachments, err := uploadAttachments(ctx, s.files, files)
	if err != nil {
		return uuid.Nil, err
	}

	message := &db_models.Message{
		FeedbackID:  feedback.ID,
		SenderID:    sender.ID,
		SenderName:  sender.Name,
		SenderRole:  sender.Role,
		Content:     content,
		Status:      db_models.MessageSent,
		Attachments: attachments,
	}

	// A manufacturer reply forces the thread to responded, even straight
	// from pending. This is the only automatic thread transition.
	if sender.IsManufacturer() {
		err = s.messageRepo.InsertWithFeedbackStatus(ctx, message, db_models.FeedbackResponded)
	} else {
		err = s.messageRepo.Insert(ctx, message)
	}
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}

	recipient := feedback.ConsumerID
	if !sender.IsManufacturer() {
		recipient = feedback.ManufacturerID
	}
	s.notifier.Notify(ctx, recipient, "New message",
		fmt.Sprintf("%s replied on %q", sender.Name, truncate(feedback.Message, 60)))

	s.publisher.Invalidate(livefeed.ThreadTopic(feedback.ID))
	s.publisher.Invalidate(livefeed.FeedbackItemTopic(feedback.ID))
	s.publisher.Invalidate(livefeed.ConsumerFeedbackTopic(feedback.ConsumerID))
	s.publisher.Invalidate(livefeed.ManufacturerFeedbackTopic(feedback.ManufacturerID))

	return message.ID, nil
}

func (s *MessageService) GetThread(ctx context.Context, viewerID uuid.UUID, feedbackID uuid.UUID) ([]db_models.Message, error) {
	feedback, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if feedback == nil {
		return nil, utils.ErrFeedbackNotFound
	}
	// Only the thread's two parties may read it; receipts must never be
	// advanced by anyone but the recipient.
	if viewerID != feedback.ConsumerID && viewerID != feedback.ManufacturerID {
		return nil, utils.ErrNotThreadParty
	}

	messages, err := s.messageRepo.FindByFeedbackID(ctx, feedbackID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	go s.markThreadRead(viewerID, feedbackID, messages)

	return messages, nil
}

// markThreadRead is the read-receipt rule. It never touches the viewer's own
// messages, and it runs on every snapshot delivery, so already-read messages
// are skipped up front.
func (s *MessageService) markThreadRead(viewerID uuid.UUID, feedbackID uuid.UUID, messages []db_models.Message) {
	ctx := context.Background()
	marked := false

	for _, m := range messages {
		if m.SenderID == viewerID || m.Status == db_models.MessageRead {
			continue
		}
		if err := s.messageRepo.UpdateStatus(ctx, m.ID, db_models.MessageRead); err != nil {
			log.Printf("ERROR: failed to mark message %s read: %v", m.ID, err)
			continue
		}
		marked = true
	}

	if marked {
		s.publisher.Invalidate(livefeed.ThreadTopic(feedbackID))
	}
}

// UpdateStatus allows only forward movement; re-applying the current status
// is a no-op.
func (s *MessageService) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.MessageStatus) error {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if message == nil {
		return utils.ErrMessageNotFound
	}

	if message.Status == status {
		return nil
	}
	if !message.Status.CanTransitionTo(status) {
		return utils.ErrIllegalTransition
	}

	if err := s.messageRepo.UpdateStatus(ctx, id, status); err != nil {
		return utils.ErrDatabaseError
	}

	s.publisher.Invalidate(livefeed.ThreadTopic(message.FeedbackID))
	return nil
}

// GroupByDate partitions a createdAt-ascending log into contiguous
// same-date runs for the chat view.
func (s *MessageService) GroupByDate(messages []db_models.Message) []response_models.MessageGroup {
	var groups []response_models.MessageGroup

	for _, m := range messages {
		date := m.CreatedAt.Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Date != date {
			groups = append(groups, response_models.MessageGroup{Date: date})
		}
		last := len(groups) - 1
		groups[last].Messages = append(groups[last].Messages, m)
	}

	return groups
}

// truncate shortens a preview by runes so a multi-byte character is never
// split at the boundary.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
