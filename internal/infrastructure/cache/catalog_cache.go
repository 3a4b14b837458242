// Package cache provides in-process caching for slow-changing catalogs.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ventasapi/internal/domain/sales"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// CatalogCache decorates a sales.CatalogRepository with a bounded TTL
// cache. The catalogs come from reporting views that change rarely, so
// a short TTL takes the picker endpoints off the database's back.
type CatalogCache struct {
	inner sales.CatalogRepository
	ttl   time.Duration
	cap   int
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// NewCatalogCache wraps inner with a cache of at most capacity entries.
func NewCatalogCache(inner sales.CatalogRepository, ttl time.Duration, capacity int) *CatalogCache {
	if capacity < 1 {
		capacity = 1
	}
	return &CatalogCache{
		inner:   inner,
		ttl:     ttl,
		cap:     capacity,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *CatalogCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *CatalogCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.cap {
		c.evictLocked()
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// evictLocked drops expired entries, and failing that the oldest one.
func (c *CatalogCache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.cap {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

// Branches implements sales.CatalogRepository.
func (c *CatalogCache) Branches(ctx context.Context) ([]string, error) {
	const key = "branches"
	if v, ok := c.get(key); ok {
		return v.([]string), nil
	}
	branches, err := c.inner.Branches(ctx)
	if err != nil {
		return nil, err
	}
	c.put(key, branches)
	return branches, nil
}

// SearchProducts implements sales.CatalogRepository.
func (c *CatalogCache) SearchProducts(ctx context.Context, query string, top int) ([]sales.ProductOption, error) {
	key := fmt.Sprintf("products:%s:%d", strings.ToLower(strings.TrimSpace(query)), top)
	if v, ok := c.get(key); ok {
		return v.([]sales.ProductOption), nil
	}
	options, err := c.inner.SearchProducts(ctx, query, top)
	if err != nil {
		return nil, err
	}
	c.put(key, options)
	return options, nil
}
