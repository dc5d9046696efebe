package livefeed

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const invalidateChannel = "livefeed:invalidate"

// Publisher fans a topic invalidation out to every hub instance.
// Invalidations are fire-and-forget; a lost one means a stale view until the
// next write, never corrupted data.
type Publisher interface {
	Invalidate(topic string)
}

type redisPublisher struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb, ctx: context.Background()}
}

func (p *redisPublisher) Invalidate(topic string) {
	if err := p.rdb.Publish(p.ctx, invalidateChannel, topic).Err(); err != nil {
		log.Printf("ERROR: failed to publish invalidation for %s: %v", topic, err)
	}
}

// NopPublisher is used when no Redis is configured (single-process runs and
// tests).
type NopPublisher struct{}

func (NopPublisher) Invalidate(string) {}
