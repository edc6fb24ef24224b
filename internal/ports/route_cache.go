package ports

import (
	"context"
	"green-route-service/internal/domain"
)

// Contract for caching optimized routes by input fingerprint. The
// optimizer's determinism makes fingerprint-keyed caching valid: equal
// fingerprints always map to equal results.
type RouteCache interface {
	// Get returns the cached route and emissions for a fingerprint, with
	// found=false on a miss.
	Get(ctx context.Context, fingerprint string) (*domain.OptimizedRoute, *domain.EmissionResult, bool, error)
	// Put stores one optimization result under its fingerprint.
	Put(ctx context.Context, fingerprint string, route *domain.OptimizedRoute, emissions *domain.EmissionResult) error
}
