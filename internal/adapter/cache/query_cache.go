package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"lexrag/internal/domain"
)

// QueryCache memoizes search results per (query, topK) pair with LRU
// eviction and a TTL. Entries carry the index generation they were
// computed against; Invalidate bumps the generation so a corpus reload
// silently expires everything.
type QueryCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	order    []string
	maxSize  int
	ttl      time.Duration
	indexGen uint64
}

type cacheEntry struct {
	results   []domain.SearchResult
	timestamp time.Time
	indexGen  uint64
}

// NewQueryCache creates a cache holding at most maxSize entries for ttl.
func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(query string, topK int) string {
	data := []byte(query)
	data = append(data, byte(topK>>8), byte(topK))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// Get returns cached results for the query, if still valid.
func (c *QueryCache) Get(query string, topK int) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(query, topK)
	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.indexGen != c.indexGen {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return nil, false
	}

	c.moveToEnd(key)
	return entry.results, true
}

// Put stores results for the query under the current index generation.
func (c *QueryCache) Put(query string, topK int, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(query, topK)
	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize {
			c.evictOldest()
		}
		c.order = append(c.order, key)
	} else {
		c.moveToEnd(key)
	}

	c.entries[key] = &cacheEntry{
		results:   results,
		timestamp: time.Now(),
		indexGen:  c.indexGen,
	}
}

// Invalidate expires every entry. Called whenever the index is rebuilt.
func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.indexGen++
}

// Size returns the number of live entries.
func (c *QueryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
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
