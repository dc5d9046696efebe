package infra

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when Redis is unreachable; the livefeed then runs in
// single-process mode without cross-instance invalidations.
func InitRedis(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, live updates stay local: %v", addr, err)
		return nil
	}

	return client
}
