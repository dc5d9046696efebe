package redis_fx

import (
	"fablink/internal/config"
	"fablink/internal/infra"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Provide(provideRedis)

// provideRedis may return nil; livefeed components treat a nil client as
// single-process mode.
func provideRedis(cfg *config.Config) *redis.Client {
	return infra.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}
