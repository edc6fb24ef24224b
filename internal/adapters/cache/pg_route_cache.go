package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"green-route-service/internal/domain"
	"green-route-service/internal/platform/obs"
)

// PGRouteCache is a SQL-backed cache for fingerprint -> optimization
// results, for deployments that want hits to survive restarts.
type PGRouteCache struct {
	DB *sql.DB
}

func NewPGRouteCache(db *sql.DB) *PGRouteCache {
	return &PGRouteCache{DB: db}
}

// InitSchema creates the cache table when missing.
func (c *PGRouteCache) InitSchema(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("route cache: db is nil")
	}
	q := `
	CREATE TABLE IF NOT EXISTS route_cache (
		fingerprint TEXT PRIMARY KEY,
		route       JSONB NOT NULL,
		emissions   JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := c.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init route cache schema: %w", err)
	}
	return nil
}

func (c *PGRouteCache) Get(ctx context.Context, fingerprint string) (_ *domain.OptimizedRoute, _ *domain.EmissionResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.pg.Get")(&err)

	if c.DB == nil {
		return nil, nil, false, errors.New("route cache: db is nil")
	}
	if fingerprint == "" {
		return nil, nil, false, errors.New("get route cache: fingerprint must not be empty")
	}

	q := `
	SELECT route, emissions
	FROM route_cache
	WHERE fingerprint = $1;
	`

	var routeRaw, emissionsRaw []byte
	err = c.DB.QueryRowContext(ctx, q, fingerprint).Scan(&routeRaw, &emissionsRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var route domain.OptimizedRoute
	if err := json.Unmarshal(routeRaw, &route); err != nil {
		return nil, nil, false, fmt.Errorf("get route cache: decode route: %w", err)
	}
	var emissions domain.EmissionResult
	if err := json.Unmarshal(emissionsRaw, &emissions); err != nil {
		return nil, nil, false, fmt.Errorf("get route cache: decode emissions: %w", err)
	}
	return &route, &emissions, true, nil
}

func (c *PGRouteCache) Put(ctx context.Context, fingerprint string, route *domain.OptimizedRoute, emissions *domain.EmissionResult) error {
	if c.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if fingerprint == "" {
		return errors.New("insert route cache: fingerprint must not be empty")
	}
	if route == nil || emissions == nil {
		return errors.New("insert route cache: route and emissions must be non-nil")
	}

	routeRaw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache: encode route: %w", err)
	}
	emissionsRaw, err := json.Marshal(emissions)
	if err != nil {
		return fmt.Errorf("insert route cache: encode emissions: %w", err)
	}

	q := `
	INSERT INTO route_cache (fingerprint, route, emissions)
	VALUES ($1, $2, $3)
	ON CONFLICT (fingerprint) DO UPDATE
	SET route = EXCLUDED.route,
		emissions = EXCLUDED.emissions;
	`
	if _, err := c.DB.ExecContext(ctx, q, fingerprint, routeRaw, emissionsRaw); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}
	return nil
}
