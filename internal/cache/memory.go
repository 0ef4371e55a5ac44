package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process TTL cache. Expired entries are dropped lazily on
// read and swept whenever the map grows past sweepThreshold.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryEntry
}

type memoryEntry struct {
	value []byte
	exp   time.Time
}

const sweepThreshold = 1024

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.exp) {
		delete(m.items, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) >= sweepThreshold {
		now := time.Now()
		for k, e := range m.items {
			if now.After(e.exp) {
				delete(m.items, k)
			}
		}
	}
	m.items[key] = memoryEntry{value: value, exp: time.Now().Add(ttl)}
}
