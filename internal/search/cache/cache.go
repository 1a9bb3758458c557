package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/providers"
	"github.com/arunpandian9159/Booking-agent/internal/search/types"
)

// Cache keeps aggregated offers for a TTL and collapses concurrent lookups
// of the same trip into one provider round.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	ttl      time.Duration
	inflight map[string]*inflightRequest
	done     chan struct{}
}

type cacheEntry struct {
	result    *types.Result
	expiresAt time.Time
}

type inflightRequest struct {
	done   chan struct{}
	result *types.Result
	err    error
}

// NewCache creates a new Cache with the specified TTL. A TTL <= 0 disables
// storage but keeps request collapsing.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries:  make(map[string]*cacheEntry),
		ttl:      ttl,
		inflight: make(map[string]*inflightRequest),
		done:     make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	close(c.done)
}

// Key identifies a trip. Codes are case-insensitive.
func (c *Cache) Key(q providers.Query) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		strings.ToUpper(q.Origin), strings.ToUpper(q.Destination), q.Date, q.Nights)
}

// GetOrFetch returns the cached result for key or runs fetch. Concurrent
// callers for the same key wait for the one fetch in flight. fetch runs with a
// context that keeps ctx's values but not its cancellation, so a caller that
// gives up does not fail the others. The boolean reports a cache hit.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (*types.Result, error)) (*types.Result, bool, error) {
	c.mu.Lock()

	if entry, ok := c.entries[key]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.result, true, nil
	}

	inflight, ok := c.inflight[key]
	if !ok {
		inflight = &inflightRequest{
			done: make(chan struct{}),
		}
		c.inflight[key] = inflight
		go c.fetch(context.WithoutCancel(ctx), key, inflight, fetch)
	}
	c.mu.Unlock()

	select {
	case <-inflight.done:
		return inflight.result, false, inflight.err
	case <-ctx.Done():
		return nil, false, context.Cause(ctx)
	}
}

func (c *Cache) fetch(ctx context.Context, key string, inflight *inflightRequest, fetch func(ctx context.Context) (*types.Result, error)) {
	result, err := fetch(ctx)

	c.mu.Lock()
	inflight.result = result
	inflight.err = err
	if err == nil && result != nil && c.ttl > 0 {
		c.entries[key] = &cacheEntry{
			result:    result,
			expiresAt: time.Now().Add(c.ttl),
		}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	close(inflight.done)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate removes a specific key from the cache.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
