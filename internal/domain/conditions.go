package domain

import "time"

// ConditionSnapshot is a point-in-time bundle of traffic and weather
// multipliers affecting travel time. The core never fetches it; the
// caller resolves conditions and injects them per request.
type ConditionSnapshot struct {
	ObservedAt        time.Time
	TrafficMultiplier float64
	WeatherMultiplier float64
	// Optional per-edge overrides keyed "fromID|toID". An override
	// replaces the global traffic multiplier for that edge only.
	EdgeMultipliers map[string]float64
}

// FreeFlow is the neutral snapshot: no traffic or weather penalty.
func FreeFlow() ConditionSnapshot {
	return ConditionSnapshot{TrafficMultiplier: 1.0, WeatherMultiplier: 1.0}
}

// MultiplierFor resolves the combined travel-time multiplier for one edge.
func (c ConditionSnapshot) MultiplierFor(fromID, toID string) float64 {
	traffic := c.TrafficMultiplier
	if m, ok := c.EdgeMultipliers[fromID+"|"+toID]; ok {
		traffic = m
	}
	return traffic * c.WeatherMultiplier
}

func (c ConditionSnapshot) Validate() error {
	if c.TrafficMultiplier <= 0 {
		return &InputError{Field: "snapshot.traffic_multiplier", Reason: "must be positive"}
	}
	if c.WeatherMultiplier <= 0 {
		return &InputError{Field: "snapshot.weather_multiplier", Reason: "must be positive"}
	}
	for edge, m := range c.EdgeMultipliers {
		if m <= 0 {
			return &InputError{
				Field:  "snapshot.edge_multipliers[" + edge + "]",
				Reason: "must be positive",
			}
		}
	}
	return nil
}
