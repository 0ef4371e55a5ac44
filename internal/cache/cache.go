// Package cache provides the optional short-TTL search-response cache. It
// is strictly best-effort: every error path degrades to a miss.
package cache

import (
	"context"
	"time"

	"github.com/eventmux/eventmux/internal/config"
)

// Cache stores serialized responses under normalized search-param keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// FromConfig returns the configured backend, or nil when caching is off.
func FromConfig(cfg config.CacheConf) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.RedisAddr != "" {
		return NewRedis(cfg.RedisAddr)
	}
	return NewMemory()
}
