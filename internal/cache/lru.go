// Package cache provides a small in-process cache for decoded record
// bodies, so re-comparing the same records in one session skips re-parsing.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ryanjanoconnell/httpdiff/pkg/ordered"
)

// BodyCache is a thread-safe LRU cache of decoded body values keyed by
// record ID.
type BodyCache struct {
	cache *lru.Cache[string, ordered.Value]
}

// NewBodyCache creates a cache holding at most maxItems decoded bodies.
func NewBodyCache(maxItems int) (*BodyCache, error) {
	c, err := lru.New[string, ordered.Value](maxItems)
	if err != nil {
		return nil, err
	}
	return &BodyCache{cache: c}, nil
}

// Get retrieves a decoded body by record ID.
func (c *BodyCache) Get(recordID string) (ordered.Value, bool) {
	return c.cache.Get(recordID)
}

// Put adds or updates a decoded body.
func (c *BodyCache) Put(recordID string, v ordered.Value) {
	c.cache.Add(recordID, v)
}

// Len returns the current number of cached bodies.
func (c *BodyCache) Len() int {
	return c.cache.Len()
}
