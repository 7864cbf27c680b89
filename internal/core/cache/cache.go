// Package cache is a small in-process TTL cache with singleflight load
// merging. The document store is the source of truth, so entries live in
// memory only and mutating operations invalidate them explicitly.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	val []byte
	exp time.Time
}

type Cache struct {
	mu   sync.RWMutex
	data map[string]entry
	sf   singleflight.Group
}

func New() *Cache {
	return &Cache{data: make(map[string]entry)}
}

// GetOrLoad returns the cached value for key, or runs load once for all
// concurrent callers and caches the result for ttl.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.exp) {
		return e.val, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		c.mu.Lock()
		c.data[key] = entry{val: b, exp: time.Now().Add(ttl)}
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.mu.Unlock()
}
