// Package inflight tracks URLs with a pipeline run currently in
// progress, so duplicate submissions can be rejected while the first is
// still running.
package inflight

import (
	"context"
	"sync"
	"time"
)

// Cache is a process-wide set of in-flight URLs. Entries are added when
// a run is accepted and removed when it terminates; a janitor clears the
// whole set on a fixed interval as a safety net against stuck entries.
// That full clear can race a live run and let a duplicate through, so the
// cache is best-effort deduplication, not a correctness guarantee.
type Cache struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func New() *Cache {
	return &Cache{urls: make(map[string]struct{})}
}

// TryAdd inserts the URL and reports whether it was absent. The check
// and insert are atomic.
func (c *Cache) TryAdd(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.urls[url]; exists {
		return false
	}
	c.urls[url] = struct{}{}
	return true
}

// Remove deletes the URL. Removing an absent URL is a no-op.
func (c *Cache) Remove(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.urls, url)
}

// Contains reports whether the URL is currently in flight.
func (c *Cache) Contains(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.urls[url]
	return exists
}

// Len returns the number of in-flight URLs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.urls)
}

// Clear empties the set.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls = make(map[string]struct{})
}

// StartJanitor clears the cache every interval until ctx is done.
func (c *Cache) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Clear()
			}
		}
	}()
}
