package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"green-route-service/internal/domain"
)

// PGRouteRepository persists completed optimizations for later review.
// Routes and emissions are stored as JSON documents keyed by route ID.
type PGRouteRepository struct {
	DB *sql.DB
}

func NewPGRouteRepository(db *sql.DB) *PGRouteRepository {
	return &PGRouteRepository{DB: db}
}

// HistoryEntry is one persisted optimization run.
type HistoryEntry struct {
	RouteID   string
	Route     *domain.OptimizedRoute
	Emissions *domain.EmissionResult
	CreatedAt time.Time
}

// InitSchema creates the history table when missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("route repository: db is nil")
	}
	q := `
	CREATE TABLE IF NOT EXISTS route_history (
		route_id   TEXT PRIMARY KEY,
		route      JSONB NOT NULL,
		emissions  JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init route history schema: %w", err)
	}
	return nil
}

// Save stores one optimization run.
func (r *PGRouteRepository) Save(ctx context.Context, route *domain.OptimizedRoute, emissions *domain.EmissionResult) error {
	if r.DB == nil {
		return errors.New("route repository: db is nil")
	}
	if route == nil || route.RouteID == "" {
		return errors.New("save route: route with a route_id is required")
	}

	routeRaw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("save route: encode route: %w", err)
	}
	emissionsRaw, err := json.Marshal(emissions)
	if err != nil {
		return fmt.Errorf("save route: encode emissions: %w", err)
	}

	q := `
	INSERT INTO route_history (route_id, route, emissions)
	VALUES ($1, $2, $3)
	ON CONFLICT (route_id) DO NOTHING;
	`
	if _, err := r.DB.ExecContext(ctx, q, route.RouteID, routeRaw, emissionsRaw); err != nil {
		return fmt.Errorf("save route %q: %w", route.RouteID, err)
	}
	return nil
}

// Get retrieves one persisted run by route ID.
func (r *PGRouteRepository) Get(ctx context.Context, routeID string) (*HistoryEntry, error) {
	if r.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}

	q := `
	SELECT route, emissions, created_at
	FROM route_history
	WHERE route_id = $1;
	`

	var routeRaw, emissionsRaw []byte
	var createdAt time.Time
	err := r.DB.QueryRowContext(ctx, q, routeID).Scan(&routeRaw, &emissionsRaw, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route %q: %w", routeID, err)
	}

	entry := &HistoryEntry{RouteID: routeID, CreatedAt: createdAt}
	if err := json.Unmarshal(routeRaw, &entry.Route); err != nil {
		return nil, fmt.Errorf("get route %q: decode route: %w", routeID, err)
	}
	if err := json.Unmarshal(emissionsRaw, &entry.Emissions); err != nil {
		return nil, fmt.Errorf("get route %q: decode emissions: %w", routeID, err)
	}
	return entry, nil
}

// ListRecent returns up to limit most recent runs, newest first.
func (r *PGRouteRepository) ListRecent(ctx context.Context, limit int) ([]*HistoryEntry, error) {
	if r.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	q := `
	SELECT route_id, route, emissions, created_at
	FROM route_history
	ORDER BY created_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list routes: query route_history table: %w", err)
	}
	defer rows.Close()

	var out []*HistoryEntry
	for rows.Next() {
		entry := &HistoryEntry{}
		var routeRaw, emissionsRaw []byte
		if err := rows.Scan(&entry.RouteID, &routeRaw, &emissionsRaw, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("list routes: scan rows: %w", err)
		}
		if err := json.Unmarshal(routeRaw, &entry.Route); err != nil {
			return nil, fmt.Errorf("list routes: decode route %q: %w", entry.RouteID, err)
		}
		if err := json.Unmarshal(emissionsRaw, &entry.Emissions); err != nil {
			return nil, fmt.Errorf("list routes: decode emissions %q: %w", entry.RouteID, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	return out, nil
}
