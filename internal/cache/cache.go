// Package cache is a small in-memory TTL cache used in front of the
// third-party APIs and the database.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	defaultMaxEntries  = 1024
	defaultLoadTimeout = 30 * time.Second
)

type Options struct {
	// MaxEntries bounds the number of stored keys. Zero means 1024.
	MaxEntries int
	// LoadTimeout bounds a shared load. Zero means 30s.
	LoadTimeout time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// flight marks one in-progress load. Delete invalidates it so its result is
// not written back.
type flight struct {
	invalidated bool
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps string keys to values that are fresh for ttl. Expired entries
// are kept for one more ttl so they can be served if a reload fails.
type Cache[V any] struct {
	name        string
	ttl         time.Duration
	maxEntries  int
	loadTimeout time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	entries  map[string]entry[V]
	inflight map[string]*flight
	group    singleflight.Group
}

func New[V any](name string, ttl time.Duration, opts Options) *Cache[V] {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = defaultMaxEntries
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = defaultLoadTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache[V]{
		name:        name,
		ttl:         ttl,
		maxEntries:  opts.MaxEntries,
		loadTimeout: opts.LoadTimeout,
		now:         opts.Now,
		entries:     make(map[string]entry[V]),
		inflight:    make(map[string]*flight),
	}
}

func (c *Cache[V]) Name() string { return c.name }

// Get returns the value for key only if it has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	e, ok := c.lookup(key)
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *Cache[V]) setLocked(key string, value V) {
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.sweepLocked()
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Delete removes key. A load already running for key still answers its
// waiters but does not store its result.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	if f, ok := c.inflight[key]; ok {
		f.invalidated = true
		delete(c.inflight, key)
	}
	c.mu.Unlock()
	c.group.Forget(key)
}

// GetOrLoad returns the fresh value for key, calling load on a miss.
// Concurrent misses for the same key share one load call. The load runs
// detached from any single caller's cancellation, bounded by LoadTimeout,
// and each caller stops waiting when its own ctx is done. If the load fails
// and a stale value is still stored, the stale value is returned instead.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	e, found := c.lookup(key)
	if found && c.now().Before(e.expiresAt) {
		c.record("hit")
		return e.value, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		f := &flight{}
		c.mu.Lock()
		c.inflight[key] = f
		c.mu.Unlock()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		v, err := load(loadCtx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.inflight[key] == f {
			delete(c.inflight, key)
		}
		if err != nil {
			return nil, err
		}
		if !f.invalidated {
			c.setLocked(key, v)
		}
		return v, nil
	})

	var err error
	select {
	case res := <-ch:
		if res.Err == nil {
			c.record("miss")
			return res.Val.(V), nil
		}
		err = res.Err
	case <-ctx.Done():
		err = ctx.Err()
	}

	if stale, ok := c.lookup(key); ok {
		c.record("stale")
		return stale.value, nil
	}
	c.record("miss")
	var zero V
	return zero, err
}

// Sweep drops entries that are past their stale window and returns how many
// were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked()
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) lookup(key string) (entry[V], bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	return e, ok
}

func (c *Cache[V]) sweepLocked() int {
	cutoff := c.now().Add(-c.ttl)
	removed := 0
	for k, e := range c.entries {
		if !e.expiresAt.After(cutoff) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache[V]) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		first     = true
	)
	for k, e := range c.entries {
		if first || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt, first = k, e.expiresAt, false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache[V]) record(result string) {
	metrics.CacheRequestsTotal.WithLabelValues(c.name, result).Inc()
}

// Sweeper is implemented by every Cache regardless of its value type.
type Sweeper interface {
	Name() string
	Sweep() int
}
