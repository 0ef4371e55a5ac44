package cache

import (
	"context"
	"testing"
	"time"

	"github.com/eventmux/eventmux/internal/config"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Error("empty cache reported a hit")
	}

	m.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := m.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set(ctx, "k", []byte("v"), -time.Second)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("expired entry served")
	}
}

func TestMemory_ZeroTTLNotStored(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set(ctx, "k", []byte("v"), 0)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("zero-TTL entry stored")
	}
}

func TestFromConfig(t *testing.T) {
	if c := FromConfig(config.CacheConf{Enabled: false}); c != nil {
		t.Error("disabled cache should be nil")
	}
	if c := FromConfig(config.CacheConf{Enabled: true}); c == nil {
		t.Error("enabled cache without redis should be in-memory")
	} else if _, ok := c.(*Memory); !ok {
		t.Errorf("backend = %T, want *Memory", c)
	}
	if c := FromConfig(config.CacheConf{Enabled: true, RedisAddr: "localhost:6379"}); c == nil {
		t.Error("redis-configured cache should not be nil")
	} else if _, ok := c.(*Redis); !ok {
		t.Errorf("backend = %T, want *Redis", c)
	}
}
