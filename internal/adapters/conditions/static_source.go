package conditions

import (
	"context"
	"time"

	"green-route-service/internal/domain"
)

// StaticSource serves one fixed snapshot for every region. Used for
// local runs without a conditions endpoint and as a test double.
type StaticSource struct {
	snapshot domain.ConditionSnapshot
}

func NewStaticSource(traffic, weather float64) *StaticSource {
	return &StaticSource{
		snapshot: domain.ConditionSnapshot{
			ObservedAt:        time.Now().UTC(),
			TrafficMultiplier: traffic,
			WeatherMultiplier: weather,
		},
	}
}

func (s *StaticSource) Snapshot(ctx context.Context, region string) (domain.ConditionSnapshot, error) {
	return s.snapshot, nil
}
