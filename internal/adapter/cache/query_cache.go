package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"wikiqa/internal/domain"
	"wikiqa/internal/port"
)

// QueryCache memoizes retrieval results per query string. Retrieval is
// deterministic for a fixed index generation, so a hit can be served
// without touching the embedder or the store. Bump invalidates every
// entry after an index rebuild.
type QueryCache struct {
	mu       sync.RWMutex
	inner    port.Retriever
	entries  map[string]*cacheEntry
	order    []string
	maxSize  int
	ttl      time.Duration
	indexGen uint64
}

type cacheEntry struct {
	passages  []domain.Passage
	timestamp time.Time
	indexGen  uint64
}

// New wraps a retriever with an LRU+TTL cache.
func New(inner port.Retriever, maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		inner:   inner,
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(query string) string {
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:16])
}

// Retrieve serves from cache when possible, delegating misses to the
// wrapped retriever. Errors are never cached.
func (c *QueryCache) Retrieve(query string) ([]domain.Passage, error) {
	key := cacheKey(query)
	if passages, ok := c.lookup(key); ok {
		return passages, nil
	}

	passages, err := c.inner.Retrieve(query)
	if err != nil {
		return nil, err
	}
	c.insert(key, passages)
	return passages, nil
}

// Bump invalidates all cached entries; call it after publishing a new
// index generation.
func (c *QueryCache) Bump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexGen++
}

func (c *QueryCache) lookup(key string) ([]domain.Passage, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	gen := c.indexGen
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if entry.indexGen != gen || time.Since(entry.timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.passages, true
}

func (c *QueryCache) insert(key string, passages []domain.Passage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.removeFromOrder(key)
	} else if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{
		passages:  passages,
		timestamp: time.Now(),
		indexGen:  c.indexGen,
	}
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
