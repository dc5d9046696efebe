package main

import (
	"context"
	"log"

	"fablink/cmd/fx/account_fx"
	"fablink/cmd/fx/blobstore_fx"
	"fablink/cmd/fx/config_fx"
	"fablink/cmd/fx/controllers_fx"
	"fablink/cmd/fx/dashboard_fx"
	"fablink/cmd/fx/db_fx"
	"fablink/cmd/fx/feedback_fx"
	"fablink/cmd/fx/livefeed_fx"
	"fablink/cmd/fx/livequery_fx"
	"fablink/cmd/fx/mail_fx"
	"fablink/cmd/fx/memcache_fx"
	"fablink/cmd/fx/message_fx"
	"fablink/cmd/fx/notification_fx"
	"fablink/cmd/fx/redis_fx"
	"fablink/cmd/fx/report_fx"
	"fablink/internal/api/controllers"
	"fablink/internal/config"
	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		redis_fx.Module,
		blobstore_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,
		livefeed_fx.Module,
		livequery_fx.Module,
		account_fx.Module,
		notification_fx.Module,
		feedback_fx.Module,
		message_fx.Module,
		report_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartHub),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartHub(lc fx.Lifecycle, hub *livefeed.Hub) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go hub.Run()
			return nil
		},
	})
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Server.Port)
				if err := engine.Run(":" + cfg.Server.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	accountController *controllers.AccountController,
	feedbackController *controllers.FeedbackController,
	messageController *controllers.MessageController,
	reportController *controllers.ReportController,
	notificationController *controllers.NotificationController,
	dashboardController *controllers.DashboardController,
	liveFeedController *controllers.LiveFeedController,
) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	RegisterRoutes(r,
		accountController,
		feedbackController,
		messageController,
		reportController,
		notificationController,
		dashboardController,
		liveFeedController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	feedbackController *controllers.FeedbackController,
	messageController *controllers.MessageController,
	reportController *controllers.ReportController,
	notificationController *controllers.NotificationController,
	dashboardController *controllers.DashboardController,
	liveFeedController *controllers.LiveFeedController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/forgot-password", accountController.ForgotPassword)
	accounts.POST("/reset-password", accountController.ResetPassword)

	me := r.Group("/accounts", middleware.JWTAuthMiddleware())
	me.GET("/me", accountController.GetProfile)
	me.PUT("/me", accountController.UpdateProfile)
	me.GET("/manufacturers", accountController.ListManufacturers)

	feedback := r.Group("/feedback", middleware.JWTAuthMiddleware())
	feedback.POST("", middleware.RoleMiddleware(db_models.RoleConsumer), feedbackController.CreateFeedback)
	feedback.GET("", feedbackController.ListMine)
	feedback.GET("/:id", feedbackController.GetFeedback)
	feedback.PATCH("/:id/status", middleware.RoleMiddleware(db_models.RoleManufacturer), feedbackController.UpdateStatus)

	messages := r.Group("/messages", middleware.JWTAuthMiddleware())
	messages.POST("", messageController.AddMessage)
	messages.GET("/thread/:feedbackId", messageController.GetThread)
	messages.PATCH("/:id/status", messageController.UpdateStatus)

	reports := r.Group("/reports", middleware.JWTAuthMiddleware())
	reports.POST("", reportController.SubmitReport)
	reports.GET("", middleware.RoleMiddleware(db_models.RoleManufacturer), reportController.ListReports)
	reports.POST("/:id/resolve", middleware.RoleMiddleware(db_models.RoleManufacturer), reportController.ResolveReport)
	reports.POST("/:id/dismiss", middleware.RoleMiddleware(db_models.RoleManufacturer), reportController.DismissReport)
	reports.POST("/:id/suspend", middleware.RoleMiddleware(db_models.RoleManufacturer), reportController.SuspendUser)

	notifications := r.Group("/notifications", middleware.JWTAuthMiddleware())
	notifications.GET("", notificationController.List)
	notifications.POST("/:id/read", notificationController.MarkRead)
	notifications.POST("/read-all", notificationController.MarkAllRead)

	dashboard := r.Group("/dashboard", middleware.JWTAuthMiddleware())
	dashboard.GET("", dashboardController.GetReport)
	dashboard.GET("/export", dashboardController.ExportCSV)

	// Token auth happens inside the handler; the WS handshake cannot carry
	// an Authorization header from a browser.
	r.GET("/livefeed", liveFeedController.Connect)
}
