package feed

import (
	"sync"
	"time"

	"StockScout/internal/model"
)

// QuoteCache holds the latest live quote per symbol with a freshness TTL.
// It is an explicit caller-owned cache: the scoring engine never sees it,
// it only receives whatever quote the caller resolved.
type QuoteCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	quote model.Quote
	at    time.Time
}

// NewQuoteCache creates a cache. A zero ttl means entries never expire.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Set stores the quote under its symbol.
func (c *QuoteCache) Set(q model.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[q.Symbol] = cacheEntry{quote: q, at: time.Now()}
}

// Get returns the cached quote for the symbol, reporting a miss when the
// entry is absent or older than the TTL.
func (c *QuoteCache) Get(symbol string) (model.Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[symbol]
	if !ok {
		return model.Quote{}, false
	}
	if c.ttl > 0 && time.Since(e.at) > c.ttl {
		return model.Quote{}, false
	}
	return e.quote, true
}

// Len returns the number of stored entries, expired or not.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
