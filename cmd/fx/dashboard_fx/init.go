package dashboard_fx

import (
	"fablink/internal/repositories"
	"fablink/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideDashboardService)

func provideDashboardService(feedbackRepo repositories.FeedbackRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(feedbackRepo)
}
