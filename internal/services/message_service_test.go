package services

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMessageFixture() (*MessageService, *MockMessageRepository, *MockFeedbackRepository, *recordingNotifier, *recordingPublisher) {
	messageRepo := new(MockMessageRepository)
	feedbackRepo := new(MockFeedbackRepository)
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	svc := NewMessageService(messageRepo, feedbackRepo, &stubFileStore{}, notifier, publisher).(*MessageService)
	return svc, messageRepo, feedbackRepo, notifier, publisher
}

func threadFixture() *db_models.Feedback {
	return &db_models.Feedback{
		ID:             uuid.New(),
		ConsumerID:     uuid.New(),
		ManufacturerID: uuid.New(),
		Message:        "Strap came loose",
		Status:         db_models.FeedbackPending,
	}
}

func TestAddMessageFromConsumer(t *testing.T) {
	svc, messageRepo, feedbackRepo, notifier, _ := newMessageFixture()
	feedback := threadFixture()
	sender := consumerFixture()
	sender.ID = feedback.ConsumerID

	feedbackRepo.On("FindByID", mock.Anything, feedback.ID).Return(feedback, nil)
	messageRepo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			msg := args.Get(1).(*db_models.Message)
			msg.ID = uuid.New()
			assert.Equal(t, db_models.MessageSent, msg.Status)
		}).Return(nil)

	id, err := svc.AddMessage(context.Background(), sender, request_models.AddMessageRequest{
		FeedbackID: feedback.ID.String(),
		Content:    "Any update on this?",
	}, nil)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.True(t, notifier.notified(feedback.ManufacturerID))
	messageRepo.AssertNotCalled(t, "InsertWithFeedbackStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMessageFromManufacturerForcesResponded(t *testing.T) {
	svc, messageRepo, feedbackRepo, notifier, publisher := newMessageFixture()
	feedback := threadFixture()
	sender := manufacturerFixture()
	sender.ID = feedback.ManufacturerID

	feedbackRepo.On("FindByID", mock.Anything, feedback.ID).Return(feedback, nil)
	messageRepo.On("InsertWithFeedbackStatus", mock.Anything, mock.Anything, db_models.FeedbackResponded).
		Run(func(args mock.Arguments) {
			args.Get(1).(*db_models.Message).ID = uuid.New()
		}).Return(nil)

	_, err := svc.AddMessage(context.Background(), sender, request_models.AddMessageRequest{
		FeedbackID: feedback.ID.String(),
		Content:    "We are shipping a replacement",
	}, nil)

	assert.NoError(t, err)
	assert.True(t, notifier.notified(feedback.ConsumerID))
	assert.True(t, publisher.invalidated(livefeed.ThreadTopic(feedback.ID)))
	messageRepo.AssertExpectations(t)
}

func TestAddMessageEmptyContent(t *testing.T) {
	svc, _, _, _, _ := newMessageFixture()

	_, err := svc.AddMessage(context.Background(), consumerFixture(), request_models.AddMessageRequest{
		FeedbackID: uuid.NewString(),
		Content:    "  ",
	}, nil)

	assert.ErrorIs(t, err, utils.ErrEmptyMessage)
}

func TestAddMessageUnknownThread(t *testing.T) {
	svc, _, feedbackRepo, _, _ := newMessageFixture()
	id := uuid.New()

	feedbackRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.AddMessage(context.Background(), consumerFixture(), request_models.AddMessageRequest{
		FeedbackID: id.String(),
		Content:    "hello",
	}, nil)

	assert.ErrorIs(t, err, utils.ErrFeedbackNotFound)
}

func TestGetThreadRejectsOutsiderWithoutReceipts(t *testing.T) {
	svc, messageRepo, feedbackRepo, _, _ := newMessageFixture()
	feedback := threadFixture()
	stranger := uuid.New()

	feedbackRepo.On("FindByID", mock.Anything, feedback.ID).Return(feedback, nil)

	_, err := svc.GetThread(context.Background(), stranger, feedback.ID)

	assert.ErrorIs(t, err, utils.ErrNotThreadParty)
	messageRepo.AssertNotCalled(t, "FindByFeedbackID", mock.Anything, mock.Anything)
	messageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetThreadUnknownFeedback(t *testing.T) {
	svc, _, feedbackRepo, _, _ := newMessageFixture()
	id := uuid.New()

	feedbackRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetThread(context.Background(), uuid.New(), id)

	assert.ErrorIs(t, err, utils.ErrFeedbackNotFound)
}

func TestGetThreadAllowsBothParties(t *testing.T) {
	svc, messageRepo, feedbackRepo, _, _ := newMessageFixture()
	feedback := threadFixture()

	feedbackRepo.On("FindByID", mock.Anything, feedback.ID).Return(feedback, nil)
	messageRepo.On("FindByFeedbackID", mock.Anything, feedback.ID).Return([]db_models.Message{}, nil)

	for _, viewer := range []uuid.UUID{feedback.ConsumerID, feedback.ManufacturerID} {
		messages, err := svc.GetThread(context.Background(), viewer, feedback.ID)
		assert.NoError(t, err)
		assert.Empty(t, messages)
	}
}

func TestMarkThreadReadSkipsOwnAndReadMessages(t *testing.T) {
	svc, messageRepo, _, _, publisher := newMessageFixture()
	viewer := uuid.New()
	other := uuid.New()
	feedbackID := uuid.New()

	own := db_models.Message{ID: uuid.New(), SenderID: viewer, Status: db_models.MessageSent}
	alreadyRead := db_models.Message{ID: uuid.New(), SenderID: other, Status: db_models.MessageRead}
	unread := db_models.Message{ID: uuid.New(), SenderID: other, Status: db_models.MessageSent}

	messageRepo.On("UpdateStatus", mock.Anything, unread.ID, db_models.MessageRead).Return(nil)

	svc.markThreadRead(viewer, feedbackID, []db_models.Message{own, alreadyRead, unread})

	messageRepo.AssertExpectations(t)
	messageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, own.ID, mock.Anything)
	messageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, alreadyRead.ID, mock.Anything)
	assert.True(t, publisher.invalidated(livefeed.ThreadTopic(feedbackID)))
}

func TestMarkThreadReadNothingToMark(t *testing.T) {
	svc, _, _, _, publisher := newMessageFixture()
	viewer := uuid.New()
	feedbackID := uuid.New()

	svc.markThreadRead(viewer, feedbackID, []db_models.Message{
		{ID: uuid.New(), SenderID: viewer, Status: db_models.MessageSent},
	})

	assert.False(t, publisher.invalidated(livefeed.ThreadTopic(feedbackID)))
}

func TestMessageUpdateStatusMonotonic(t *testing.T) {
	svc, messageRepo, _, _, _ := newMessageFixture()
	message := &db_models.Message{
		ID:         uuid.New(),
		FeedbackID: uuid.New(),
		Status:     db_models.MessageRead,
	}

	messageRepo.On("FindByID", mock.Anything, message.ID).Return(message, nil)

	err := svc.UpdateStatus(context.Background(), message.ID, db_models.MessageDelivered)

	assert.ErrorIs(t, err, utils.ErrIllegalTransition)
}

func TestMessageUpdateStatusAdvances(t *testing.T) {
	svc, messageRepo, _, _, publisher := newMessageFixture()
	message := &db_models.Message{
		ID:         uuid.New(),
		FeedbackID: uuid.New(),
		Status:     db_models.MessageSent,
	}

	messageRepo.On("FindByID", mock.Anything, message.ID).Return(message, nil)
	messageRepo.On("UpdateStatus", mock.Anything, message.ID, db_models.MessageDelivered).Return(nil)

	err := svc.UpdateStatus(context.Background(), message.ID, db_models.MessageDelivered)

	assert.NoError(t, err)
	assert.True(t, publisher.invalidated(livefeed.ThreadTopic(message.FeedbackID)))
}

func TestTruncateKeepsMultiByteRunesIntact(t *testing.T) {
	long := strings.Repeat("ü", 70)

	short := truncate(long, 60)

	assert.True(t, utf8.ValidString(short))
	assert.Equal(t, strings.Repeat("ü", 60)+"...", short)
	assert.Equal(t, "héllo", truncate("héllo", 60))
}

func TestGroupByDate(t *testing.T) {
	svc, _, _, _, _ := newMessageFixture()
	day1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)

	groups := svc.GroupByDate([]db_models.Message{
		{Content: "a", CreatedAt: day1},
		{Content: "b", CreatedAt: day1.Add(2 * time.Hour)},
		{Content: "c", CreatedAt: day2},
	})

	assert.Len(t, groups, 2)
	assert.Equal(t, "2025-03-01", groups[0].Date)
	assert.Len(t, groups[0].Messages, 2)
	assert.Equal(t, "2025-03-02", groups[1].Date)
	assert.Len(t, groups[1].Messages, 1)
}
