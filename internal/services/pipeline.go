package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"green-route-service/internal/domain"
	"green-route-service/internal/platform/metrics"
	"green-route-service/internal/ports"
)

// Planner runs the optimization pipeline: validate, fingerprint, consult
// the route cache, build matrices, sequence, score, store. Stateless per
// request; safe for concurrent use.
type Planner struct {
	Vehicles ports.VehicleRegistry
	Cache    ports.RouteCache
	Config   OptimizerConfig
	Settings EmissionSettings
}

func NewPlanner(vehicles ports.VehicleRegistry, cache ports.RouteCache) *Planner {
	return &Planner{
		Vehicles: vehicles,
		Cache:    cache,
		Settings: DefaultEmissionSettings(),
	}
}

// OptimizeRoute computes the best visiting order for a request under the
// given conditions and scores its emissions.
func (p *Planner) OptimizeRoute(
	ctx context.Context,
	req domain.RouteRequest,
	snap domain.ConditionSnapshot,
) (*domain.OptimizedRoute, *domain.EmissionResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, nil, err
	}

	vehicle, ok := p.Vehicles.Get(req.Vehicle)
	if !ok {
		return nil, nil, &domain.InputError{
			Field:  "vehicle",
			Reason: fmt.Sprintf("unknown vehicle profile %q", req.Vehicle),
		}
	}

	fingerprint := Fingerprint(req, snap)
	if p.Cache != nil {
		route, emissions, hit, err := p.Cache.Get(ctx, fingerprint)
		if err != nil {
			// Cache trouble must not fail the request.
			log.Printf("route cache get failed: fingerprint=%s err=%v", fingerprint, err)
		} else if hit {
			metrics.RouteCacheHits.Inc()
			return route, emissions, nil
		}
	}

	route, err := OptimizeSequence(
		ctx, req.Origin, req.Destinations,
		vehicle, req.Weights, req.Constraints, req.DepartAt, snap, p.Config,
	)
	if err != nil {
		return nil, nil, err
	}
	route.RouteID = uuid.NewString()

	emissions := ScoreRoute(route, vehicle, p.Settings)

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, fingerprint, route, emissions); err != nil {
			log.Printf("route cache put failed: fingerprint=%s err=%v", fingerprint, err)
		}
	}

	metrics.Optimizations.Inc()
	metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	return route, emissions, nil
}

// ScoreRoute re-scores an existing route against a named vehicle profile
// without re-optimizing, for vehicle-swap comparisons.
func (p *Planner) ScoreRoute(route *domain.OptimizedRoute, vehicleName string) (*domain.EmissionResult, error) {
	vehicle, ok := p.Vehicles.Get(vehicleName)
	if !ok {
		return nil, &domain.InputError{
			Field:  "vehicle",
			Reason: fmt.Sprintf("unknown vehicle profile %q", vehicleName),
		}
	}
	return ScoreRoute(route, vehicle, p.Settings), nil
}
