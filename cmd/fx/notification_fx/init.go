package notification_fx

import (
	"fablink/internal/livefeed"
	"fablink/internal/repositories"
	"fablink/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideNotificationService, provideNotificationRepo)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher livefeed.Publisher,
) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo, publisher)
}
