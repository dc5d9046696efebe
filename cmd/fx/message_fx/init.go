package message_fx

import (
	"fablink/internal/blobstore"
	"fablink/internal/livefeed"
	"fablink/internal/repositories"
	"fablink/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideMessageService, provideMessageRepo)

func provideMessageRepo(db *gorm.DB) repositories.MessageRepository {
	return repositories.NewMessageRepository(db)
}

func provideMessageService(
	messageRepo repositories.MessageRepository,
	feedbackRepo repositories.FeedbackRepository,
	files blobstore.FileStore,
	notifier services.NotificationServiceInterface,
	publisher livefeed.Publisher,
) services.MessageServiceInterface {
	return services.NewMessageService(messageRepo, feedbackRepo, files, notifier, publisher)
}
