package account_fx

import (
	"fablink/internal/livefeed"
	"fablink/internal/repositories"
	"fablink/internal/services"
	mem "fablink/pkg/memcache"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(
	userRepo repositories.UserRepository,
	mailService services.IMailService,
	resetTokens mem.ResetTokenStore,
	publisher livefeed.Publisher,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, mailService, resetTokens, publisher)
}
