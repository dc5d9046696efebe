package mail_fx

import (
	"log"

	"fablink/internal/config"
	"fablink/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config) services.IMailService {
	if cfg.SMTP.Host == "" {
		log.Println("No SMTP host configured, reset mails disabled")
		return services.NewNopMailService()
	}

	mailService, err := services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		FromName:   cfg.SMTP.FromName,
		AppName:    "FabLink",
		AppBaseURL: cfg.SMTP.AppBaseURL,
	})
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
		return services.NewNopMailService()
	}

	return mailService
}
