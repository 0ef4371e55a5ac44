package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the cache with a shared Redis instance so replicas of the
// service share one response cache.
type Redis struct {
	client *redis.Client
}

const keyPrefix = "eventmux:search:"

// NewRedis creates a Redis-backed cache for the given address.
func NewRedis(addr string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike are a miss.
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	_ = r.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}
