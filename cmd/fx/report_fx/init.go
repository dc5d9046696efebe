package report_fx

import (
	"fablink/internal/livefeed"
	"fablink/internal/repositories"
	"fablink/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideReportService, provideReportRepo)

func provideReportRepo(db *gorm.DB) repositories.ReportRepository {
	return repositories.NewReportRepository(db)
}

func provideReportService(
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	notifier services.NotificationServiceInterface,
	publisher livefeed.Publisher,
) services.ReportServiceInterface {
	return services.NewReportService(reportRepo, userRepo, notifier, publisher)
}
