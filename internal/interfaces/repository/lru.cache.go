// Package repository provides the cache implementations used by the lookup core.
package repository

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sgrouples/iplookups/internal/domain"
)

// NewLRUCache returns a bounded ResultCache with least-recently-used eviction.
// Both Get and Put refresh the recency of an entry.
//
// Callers wanting no caching at all pass a nil domain.ResultCache to the
// lookup handler instead of constructing a zero-capacity cache.
func NewLRUCache(capacity int) (*LRUCache, error) {
	cache, err := lru.New[string, domain.Result](capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create result cache: %w", err)
	}

	return &LRUCache{cache: cache}, nil
}

type LRUCache struct {
	cache *lru.Cache[string, domain.Result]
}

var _ domain.ResultCache = (*LRUCache)(nil)

func (c *LRUCache) Get(key string) (domain.Result, bool) {
	return c.cache.Get(key)
}

func (c *LRUCache) Put(key string, result domain.Result) {
	c.cache.Add(key, result)
}

// Len reports the number of cached entries, used for observability.
func (c *LRUCache) Len() int {
	return c.cache.Len()
}
