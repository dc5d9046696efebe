package livefeed_fx

import (
	"fablink/internal/livefeed"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Provide(providePublisher, provideHub)

func providePublisher(rdb *redis.Client) livefeed.Publisher {
	if rdb == nil {
		return livefeed.NopPublisher{}
	}
	return livefeed.NewRedisPublisher(rdb)
}

func provideHub(source livefeed.SnapshotSource, rdb *redis.Client) *livefeed.Hub {
	return livefeed.NewHub(source, rdb)
}
