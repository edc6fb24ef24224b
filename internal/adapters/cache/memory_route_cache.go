package cache

import (
	"context"
	"sync"

	"green-route-service/internal/domain"
)

// MemoryRouteCache is a process-local fingerprint cache, used when no
// Redis or Postgres backend is configured and in tests.
type MemoryRouteCache struct {
	mu      sync.RWMutex
	entries map[string]cachedResult
}

func NewMemoryRouteCache() *MemoryRouteCache {
	return &MemoryRouteCache{entries: make(map[string]cachedResult)}
}

func (c *MemoryRouteCache) Get(ctx context.Context, fingerprint string) (*domain.OptimizedRoute, *domain.EmissionResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[fingerprint]
	if !ok {
		return nil, nil, false, nil
	}
	return res.Route, res.Emissions, true, nil
}

func (c *MemoryRouteCache) Put(ctx context.Context, fingerprint string, route *domain.OptimizedRoute, emissions *domain.EmissionResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = cachedResult{Route: route, Emissions: emissions}
	return nil
}
