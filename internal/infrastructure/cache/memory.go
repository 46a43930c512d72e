package cache

import (
	"context"
	"sync"
	"time"

	"github.com/deikotec/socialflow/internal/domain/assets"
	"github.com/deikotec/socialflow/internal/domain/integrations"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache keeps OAuth state and locks inside one process.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	locks   map[string]*keyLock
	now     func() time.Time
}

type keyLock struct {
	ch      chan struct{}
	waiters int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		locks:   make(map[string]*keyLock),
		now:     time.Now,
	}
}

func (c *MemoryCache) Put(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
	return nil
}

func (c *MemoryCache) Take(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	delete(c.entries, key)
	if !e.expiresAt.After(c.now()) {
		return "", false, nil
	}
	return e.value, true, nil
}

// WithLock runs fn while holding the in-process lock for key.
func (c *MemoryCache) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		c.locks[key] = l
	}
	l.waiters++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(c.locks, key)
		}
		c.mu.Unlock()
	}()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.ch }()

	return fn(ctx)
}

var (
	_ integrations.StateStore = (*MemoryCache)(nil)
	_ assets.Locker           = (*MemoryCache)(nil)
)
