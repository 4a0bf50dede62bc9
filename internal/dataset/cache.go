// internal/dataset/cache.go
//
// TTL cache in front of a record Source, so repeated question/suggestion
// requests don't re-read the file or database on every hit.
//
// Characteristics:
//   - Explicit object constructed once at startup and injected into the
//     services that need records (no package-level globals).
//   - Clock is injected, so expiry is testable with a fake clock.
//   - Concurrency-safe via RWMutex; expiry is time-based only.

package dataset

import (
	"context"
	"sync"
	"time"
)

// Cache wraps a Source and serves its records for TTL before reloading.
type Cache struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex // guards records + fetched
	records []Record
	fetched time.Time
}

// NewCache builds a cache over src. A nil now defaults to time.Now;
// a non-positive ttl means records load once and never expire.
func NewCache(src Source, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{src: src, ttl: ttl, now: now}
}

// Records returns the cached record list, reloading from the source when
// the TTL has elapsed. Callers must not mutate the returned slice.
func (c *Cache) Records(ctx context.Context) ([]Record, error) {
	c.mu.RLock()
	if c.records != nil && !c.expired() {
		recs := c.records
		c.mu.RUnlock()
		return recs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have refreshed while we waited for the lock.
	if c.records != nil && !c.expired() {
		return c.records, nil
	}
	recs, err := c.src.Load(ctx)
	if err != nil {
		// Serve stale data over failing hard, if we have any.
		if c.records != nil {
			return c.records, nil
		}
		return nil, err
	}
	c.records = recs
	c.fetched = c.now()
	return c.records, nil
}

// expired reports whether the cached records are past their TTL.
// Callers must hold at least the read lock.
func (c *Cache) expired() bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(c.fetched) >= c.ttl
}
