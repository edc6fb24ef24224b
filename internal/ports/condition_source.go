package ports

import (
	"context"
	"green-route-service/internal/domain"
)

// Contract for resolving traffic/weather conditions for a region. Only
// the serving layer consumes this; the optimization core receives
// already-resolved snapshots and never fetches.
type ConditionSource interface {
	// Snapshot returns current conditions for a region key.
	Snapshot(ctx context.Context, region string) (domain.ConditionSnapshot, error)
}
