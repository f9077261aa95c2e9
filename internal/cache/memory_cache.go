package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local cache with a background janitor.
type MemoryCache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	quit  chan struct{}
	once  sync.Once
}

func NewMemoryCache[V any](janitorInterval time.Duration) *MemoryCache[V] {
	mc := &MemoryCache[V]{
		items: make(map[string]entry[V]),
		quit:  make(chan struct{}),
	}
	if janitorInterval > 0 {
		go mc.janitor(janitorInterval)
	}
	return mc
}

// Stop terminates the janitor goroutine.
func (mc *MemoryCache[V]) Stop() {
	mc.once.Do(func() { close(mc.quit) })
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	mc.mu.RLock()
	e, ok := mc.items[key]
	mc.mu.RUnlock()
	if !ok || e.expired(time.Now()) {
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	mc.mu.Lock()
	mc.items[key] = e
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			mc.mu.Lock()
			for k, e := range mc.items {
				if e.expired(now) {
					delete(mc.items, k)
				}
			}
			mc.mu.Unlock()
		case <-mc.quit:
			return
		}
	}
}
