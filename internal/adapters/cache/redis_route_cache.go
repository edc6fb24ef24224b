package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"green-route-service/internal/domain"
	"green-route-service/internal/platform/obs"
)

// cachedResult is the stored JSON envelope: route and emissions travel
// together so a hit skips both stages.
type cachedResult struct {
	Route     *domain.OptimizedRoute `json:"route"`
	Emissions *domain.EmissionResult `json:"emissions"`
}

// RedisRouteCache keys optimization results by input fingerprint with a
// TTL. Deterministic optimizer output makes the cache transparent to
// callers.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(addr, password string, db int, ttl time.Duration) (*RedisRouteCache, error) {
	if addr == "" {
		return nil, errors.New("redis route cache: addr must be non-empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisRouteCache{rdb: rdb, ttl: ttl}, nil
}

func (c *RedisRouteCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisRouteCache) Close() error {
	return c.rdb.Close()
}

func (c *RedisRouteCache) Get(ctx context.Context, fingerprint string) (_ *domain.OptimizedRoute, _ *domain.EmissionResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	raw, err := c.rdb.Get(ctx, cacheKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var res cachedResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, nil, false, fmt.Errorf("get route cache: decode: %w", err)
	}
	if res.Route == nil || res.Emissions == nil {
		return nil, nil, false, nil
	}
	return res.Route, res.Emissions, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, fingerprint string, route *domain.OptimizedRoute, emissions *domain.EmissionResult) error {
	if route == nil || emissions == nil {
		return errors.New("put route cache: route and emissions must be non-nil")
	}

	raw, err := json.Marshal(cachedResult{Route: route, Emissions: emissions})
	if err != nil {
		return fmt.Errorf("put route cache: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKey(fingerprint), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}

func cacheKey(fingerprint string) string {
	return "route:" + fingerprint
}
