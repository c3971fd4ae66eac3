package aggregator

import (
	"sync"
	"time"

	"certhub/models/certificate"
)

// ResultCache is an explicitly owned, injected cache for hot lookups with a
// bounded time-to-live. No package-level state: callers construct one and
// hand it to the Aggregator, or pass nil to disable caching entirely.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	records   []certificate.CanonicalCertificate
	expiresAt time.Time
}

func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ResultCache) Get(key string) ([]certificate.CanonicalCertificate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.records, true
}

func (c *ResultCache) Set(key string, records []certificate.CanonicalCertificate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		records:   records,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops one key, used after admin edits so stale pages do not
// outlive the TTL.
func (c *ResultCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
