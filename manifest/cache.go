package manifest

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Compile-time interface compliance check
var _ Loader = (*Cache)(nil)

// Cache memoizes successfully decoded manifests by directory.
//
// Concurrent loads of the same directory share one underlying Load. Errors
// are returned to every waiter but never stored, so a later call retries.
// Cache is safe for concurrent use.
type Cache struct {
	loader Loader
	group  singleflight.Group

	mu    sync.RWMutex
	items map[string]*BuildFile

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache wraps loader with an in-memory cache.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader: loader,
		items:  make(map[string]*BuildFile),
	}
}

// Load returns the cached manifest for dir, loading it on first use.
func (c *Cache) Load(ctx context.Context, dir string) (*BuildFile, error) {
	if bf, ok := c.get(dir); ok {
		c.hits.Add(1)
		return bf, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(dir, func() (any, error) {
		if bf, ok := c.get(dir); ok {
			return bf, nil
		}
		bf, err := c.loader.Load(ctx, dir)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[dir] = bf
		c.mu.Unlock()
		return bf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*BuildFile), nil
}

func (c *Cache) get(dir string) (*BuildFile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bf, ok := c.items[dir]
	return bf, ok
}

// Digest returns the content digest of a cached manifest.
func (c *Cache) Digest(dir string) (uint64, bool) {
	bf, ok := c.get(dir)
	if !ok {
		return 0, false
	}
	return bf.Digest, true
}

// Len returns the number of cached manifests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all entries and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*BuildFile)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats reports cache hits and misses since creation or the last Clear.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
