package controllers_fx

import (
	"fablink/internal/api/controllers"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewFeedbackController),
	fx.Provide(controllers.NewMessageController),
	fx.Provide(controllers.NewReportController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewLiveFeedController))
