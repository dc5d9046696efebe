package feedback_fx

import (
	"fablink/internal/blobstore"
	"fablink/internal/livefeed"
	"fablink/internal/repositories"
	"fablink/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideFeedbackService, provideFeedbackRepo)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepository {
	return repositories.NewFeedbackRepository(db)
}

func provideFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	userRepo repositories.UserRepository,
	files blobstore.FileStore,
	notifier services.NotificationServiceInterface,
	publisher livefeed.Publisher,
) services.FeedbackServiceInterface {
	return services.NewFeedbackService(feedbackRepo, userRepo, files, notifier, publisher)
}
