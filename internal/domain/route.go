package domain

import (
	"fmt"
	"time"
)

// ObjectiveWeights balances the optimizer's cost terms. Each weight must
// be non-negative and at least one must be positive; they need not sum
// to 1 as input and are normalized internally.
type ObjectiveWeights struct {
	Time      float64
	Distance  float64
	Fuel      float64
	Emissions float64
}

func (w ObjectiveWeights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"weights.time", w.Time},
		{"weights.distance", w.Distance},
		{"weights.fuel", w.Fuel},
		{"weights.emissions", w.Emissions},
	} {
		if f.value < 0 {
			return &InputError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if w.Time+w.Distance+w.Fuel+w.Emissions == 0 {
		return &InputError{Field: "weights", Reason: "at least one weight must be positive"}
	}
	return nil
}

// Normalized returns weights scaled to sum to 1.
func (w ObjectiveWeights) Normalized() ObjectiveWeights {
	sum := w.Time + w.Distance + w.Fuel + w.Emissions
	if sum == 0 {
		return ObjectiveWeights{Time: 1}
	}
	return ObjectiveWeights{
		Time:      w.Time / sum,
		Distance:  w.Distance / sum,
		Fuel:      w.Fuel / sum,
		Emissions: w.Emissions / sum,
	}
}

// Constraints are optional hard limits on the whole route. Zero means unset.
// Capacity comes from the vehicle profile, not from here.
type Constraints struct {
	MaxDistanceKm float64
	MaxDuration   time.Duration
}

// RouteRequest is one optimization problem: an origin, an unordered set
// of destinations, a vehicle, and objective weights. The visiting order
// is the optimizer's output, never part of the input.
type RouteRequest struct {
	Origin       Stop
	Destinations []Stop
	Vehicle      string
	Weights      ObjectiveWeights
	Constraints  Constraints
	DepartAt     time.Time
}

func (r RouteRequest) Validate() error {
	if err := r.Origin.Validate(); err != nil {
		return err
	}
	if len(r.Destinations) == 0 {
		return &InputError{Field: "destinations", Reason: "must contain at least one stop"}
	}
	seen := map[string]struct{}{r.Origin.ID: {}}
	for _, s := range r.Destinations {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID]; dup {
			return &InputError{
				Field:  "destinations",
				Reason: fmt.Sprintf("duplicate stop id %q", s.ID),
			}
		}
		seen[s.ID] = struct{}{}
	}
	if r.Vehicle == "" {
		return &InputError{Field: "vehicle", Reason: "must be non-empty"}
	}
	if err := r.Weights.Validate(); err != nil {
		return err
	}
	if r.Constraints.MaxDistanceKm < 0 {
		return &InputError{Field: "constraints.max_distance_km", Reason: "must not be negative"}
	}
	if r.Constraints.MaxDuration < 0 {
		return &InputError{Field: "constraints.max_duration", Reason: "must not be negative"}
	}
	return nil
}

// Leg is one driven segment of an optimized route.
type Leg struct {
	FromID     string
	ToID       string
	DistanceKm float64
	Duration   time.Duration
	ArriveAt   time.Time
}

// OptimizedRoute is the chosen visiting sequence plus its aggregate
// metrics. Sequence is a permutation of the request's destinations with
// the origin fixed first (origin itself is not part of Sequence).
// It is immutable planning data and contains no side effects.
type OptimizedRoute struct {
	RouteID         string
	Vehicle         string
	DepartAt        time.Time
	Sequence        []Stop
	Legs            []Leg
	TotalDistanceKm float64
	TotalDuration   time.Duration
	FuelLiters      float64
	OperatingCost   float64
	Feasible        bool
}
