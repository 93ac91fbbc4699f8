package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheTTL     = 10 * time.Minute
	defaultFailureRetry = 30 * time.Second
	flightKey           = "catalog"
)

// Snapshot is what the cache serves: always a usable catalog, plus the
// reason the latest fetch failed, if it did.
type Snapshot struct {
	Catalog   *Catalog
	Report    SegmentReport
	FetchedAt time.Time
	Err       error
	Stale     bool
}

// Available reports whether there is anything to show.
func (s Snapshot) Available() bool {
	return s.Catalog.Len() > 0
}

// CacheOptions configures a Cache.
type CacheOptions struct {
	TTL          time.Duration
	FailureRetry time.Duration
	Now          func() time.Time
	Logger       *logger.Logger
}

// Cache keeps the last good catalog for TTL. A failed refresh never replaces
// it; failures are remembered for FailureRetry so a broken source is not
// hammered on every request.
type Cache struct {
	loader       Loader
	ttl          time.Duration
	failureRetry time.Duration
	now          func() time.Time
	logg         *logger.Logger
	group        singleflight.Group

	mu         sync.RWMutex
	current    *Snapshot
	validUntil time.Time
	lastErr    error
	retryAfter time.Time
}

// NewCache wraps loader.
func NewCache(loader Loader, opts CacheOptions) (*Cache, error) {
	if loader == nil {
		return nil, errors.New("catalog loader required")
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultCacheTTL
	}
	if opts.FailureRetry <= 0 {
		opts.FailureRetry = defaultFailureRetry
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Cache{
		loader:       loader,
		ttl:          opts.TTL,
		failureRetry: opts.FailureRetry,
		now:          opts.Now,
		logg:         opts.Logger,
	}, nil
}

// Get returns the cached snapshot, loading it when expired. Concurrent
// callers share one load.
func (c *Cache) Get(ctx context.Context) Snapshot {
	c.mu.RLock()
	snap, ok := c.cachedLocked()
	c.mu.RUnlock()
	if ok {
		return snap
	}

	// The load outlives any single request that triggered it.
	flightCtx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(flightKey, func() (any, error) {
		return c.load(flightCtx), nil
	})
	return v.(Snapshot)
}

// Invalidate forces the next Get to reload. The current catalog stays as the
// fallback if that reload fails.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validUntil = time.Time{}
	c.retryAfter = time.Time{}
}

// Refresh invalidates and reloads.
func (c *Cache) Refresh(ctx context.Context) Snapshot {
	c.Invalidate()
	return c.Get(ctx)
}

func (c *Cache) load(ctx context.Context) Snapshot {
	c.mu.RLock()
	snap, ok := c.cachedLocked()
	c.mu.RUnlock()
	if ok {
		return snap
	}

	cat, report, err := c.loader.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if err != nil {
		c.lastErr = err
		c.retryAfter = now.Add(c.failureRetry)
		if c.current != nil {
			c.logg.Warn(c.logg.WithField(ctx, "fetched_at", c.current.FetchedAt), "catalog.serving_stale")
		}
		return c.snapshotLocked()
	}

	c.current = &Snapshot{Catalog: cat, Report: report, FetchedAt: now}
	c.validUntil = now.Add(c.ttl)
	c.lastErr = nil
	c.retryAfter = time.Time{}
	return c.snapshotLocked()
}

func (c *Cache) cachedLocked() (Snapshot, bool) {
	now := c.now()
	if c.current != nil && c.lastErr == nil && now.Before(c.validUntil) {
		return c.snapshotLocked(), true
	}
	if c.lastErr != nil && now.Before(c.retryAfter) {
		return c.snapshotLocked(), true
	}
	return Snapshot{}, false
}

func (c *Cache) snapshotLocked() Snapshot {
	if c.current == nil {
		return Snapshot{Catalog: Empty(), Err: c.lastErr}
	}
	snap := *c.current
	snap.Err = c.lastErr
	snap.Stale = c.lastErr != nil
	return snap
}
