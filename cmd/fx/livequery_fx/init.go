package livequery_fx

import (
	"fablink/internal/livefeed"
	"fablink/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideSnapshotSource)

func provideSnapshotSource(
	accountService services.AccountServiceInterface,
	feedbackService services.FeedbackServiceInterface,
	messageService services.MessageServiceInterface,
	notificationService services.NotificationServiceInterface,
) livefeed.SnapshotSource {
	return services.NewLiveQueryResolver(accountService, feedbackService, messageService, notificationService)
}
