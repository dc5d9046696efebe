package db_fx

import (
	"log"

	"fablink/internal/config"
	"fablink/internal/infra"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(provideDB)

func provideDB(cfg *config.Config) *gorm.DB {
	db := infra.InitPostgresql(cfg.Postgres.URL)
	if err := infra.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}
