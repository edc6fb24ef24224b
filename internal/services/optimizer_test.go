package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"green-route-service/internal/domain"
)

func testVehicle() domain.VehicleProfile {
	return domain.VehicleProfile{
		Name:                  "diesel_truck",
		FuelType:              domain.FuelDiesel,
		Capacity:              16,
		EmissionFactorKgPerKm: 0.18,
		IdleEmissionKgPerHour: 0.8,
		FuelLPer100Km:         35,
		CostPerKm:             0.55,
		CostPerHour:           25,
		ReferenceKgPerKm:      0.18,
	}
}

func testDepart() time.Time {
	return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
}

// Stops on the equator along increasing longitude; the optimal visiting
// order walks the line outward, which is also the nearest-neighbor tour.
func lineDests() []domain.Stop {
	return []domain.Stop{
		{ID: "a", Lat: 0, Lon: 0.01},
		{ID: "b", Lat: 0, Lon: 0.02},
		{ID: "c", Lat: 0, Lon: 0.03},
		{ID: "d", Lat: 0, Lon: 0.04},
	}
}

func optimizeLine(t *testing.T, cfg OptimizerConfig) *domain.OptimizedRoute {
	t.Helper()
	route, err := OptimizeSequence(
		context.Background(),
		domain.Stop{ID: "hub", Lat: 0, Lon: 0},
		lineDests(),
		testVehicle(),
		domain.ObjectiveWeights{Time: 1},
		domain.Constraints{},
		testDepart(),
		domain.FreeFlow(),
		cfg,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return route
}

func sequenceIDs(route *domain.OptimizedRoute) []string {
	ids := make([]string, 0, len(route.Sequence))
	for _, s := range route.Sequence {
		ids = append(ids, s.ID)
	}
	return ids
}

func assertSequence(t *testing.T, route *domain.OptimizedRoute, want ...string) {
	t.Helper()
	got := sequenceIDs(route)
	if len(got) != len(want) {
		t.Fatalf("sequence %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sequence %v, want %v", got, want)
		}
	}
}

func TestOptimizeExactLineTour(t *testing.T) {
	route := optimizeLine(t, OptimizerConfig{})

	assertSequence(t, route, "a", "b", "c", "d")
	if !route.Feasible {
		t.Fatal("route should be feasible")
	}
	if len(route.Legs) != 4 {
		t.Fatalf("expected 4 legs, got %d", len(route.Legs))
	}
	// 0.04 degrees of equatorial longitude is ~4.45 km.
	if route.TotalDistanceKm < 4.3 || route.TotalDistanceKm > 4.6 {
		t.Fatalf("total distance = %v km, want ~4.45", route.TotalDistanceKm)
	}
}

func TestOptimizePermutationProperty(t *testing.T) {
	dests := []domain.Stop{
		{ID: "n1", Lat: 0.010, Lon: 0.004},
		{ID: "n2", Lat: -0.006, Lon: 0.017},
		{ID: "n3", Lat: 0.021, Lon: -0.008},
		{ID: "n4", Lat: -0.015, Lon: -0.012},
		{ID: "n5", Lat: 0.004, Lon: 0.030},
		{ID: "n6", Lat: 0.018, Lon: 0.022},
		{ID: "n7", Lat: -0.020, Lon: 0.009},
		{ID: "n8", Lat: 0.007, Lon: -0.025},
	}

	route, err := OptimizeSequence(
		context.Background(),
		domain.Stop{ID: "hub", Lat: 0, Lon: 0},
		dests,
		testVehicle(),
		domain.ObjectiveWeights{Time: 1, Distance: 1, Fuel: 1, Emissions: 1},
		domain.Constraints{},
		testDepart(),
		domain.FreeFlow(),
		OptimizerConfig{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Sequence) != len(dests) {
		t.Fatalf("sequence length = %d, want %d", len(route.Sequence), len(dests))
	}
	seen := map[string]bool{}
	for _, s := range route.Sequence {
		if seen[s.ID] {
			t.Fatalf("stop %q repeated in sequence", s.ID)
		}
		seen[s.ID] = true
	}
	for _, d := range dests {
		if !seen[d.ID] {
			t.Fatalf("stop %q missing from sequence", d.ID)
		}
	}
}

func TestOptimizeDeterministicTieBreak(t *testing.T) {
	// a and b are mirror images of each other around the origin; both
	// orders cost the same, so the lower stop ID must come first.
	dests := []domain.Stop{
		{ID: "b", Lat: 0, Lon: -0.01},
		{ID: "a", Lat: 0, Lon: 0.01},
	}

	for i := 0; i < 3; i++ {
		route, err := OptimizeSequence(
			context.Background(),
			domain.Stop{ID: "hub", Lat: 0, Lon: 0},
			dests,
			testVehicle(),
			domain.ObjectiveWeights{Time: 1},
			domain.Constraints{},
			testDepart(),
			domain.FreeFlow(),
			OptimizerConfig{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertSequence(t, route, "a", "b")
	}
}

func TestOptimizeDeterminismAcrossRuns(t *testing.T) {
	first := optimizeLine(t, OptimizerConfig{})
	second := optimizeLine(t, OptimizerConfig{})

	assertSequence(t, second, sequenceIDs(first)...)
	if first.TotalDistanceKm != second.TotalDistanceKm {
		t.Fatalf(
			"distance differs across identical runs: %v vs %v",
			first.TotalDistanceKm, second.TotalDistanceKm,
		)
	}
	if first.TotalDuration != second.TotalDuration {
		t.Fatalf(
			"duration differs across identical runs: %v vs %v",
			first.TotalDuration, second.TotalDuration,
		)
	}
}

func TestOptimizeHeuristicMatchesExactOnLine(t *testing.T) {
	// ExactStopLimit 1 forces the greedy + 2-opt path.
	route := optimizeLine(t, OptimizerConfig{ExactStopLimit: 1})
	assertSequence(t, route, "a", "b", "c", "d")
}

func TestOptimizeBudgetFallsBackToHeuristic(t *testing.T) {
	// A 1ns budget expires before the exact search starts; the caller
	// still gets a feasible route, never a timeout.
	route := optimizeLine(t, OptimizerConfig{Budget: time.Nanosecond})
	assertSequence(t, route, "a", "b", "c", "d")
}

func TestOptimizeCapacityInfeasible(t *testing.T) {
	dests := lineDests()
	for i := range dests {
		dests[i].Demand = 5
	}

	_, err := OptimizeSequence(
		context.Background(),
		domain.Stop{ID: "hub", Lat: 0, Lon: 0},
		dests,
		testVehicle(), // capacity 16 < total demand 20
		domain.ObjectiveWeights{Time: 1},
		domain.Constraints{},
		testDepart(),
		domain.FreeFlow(),
		OptimizerConfig{},
	)
	if !domain.IsInfeasible(err) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
}

func TestOptimizeClosedWindowInfeasible(t *testing.T) {
	depart := testDepart()
	dests := lineDests()
	// Stop a is ~1.1 km out (~1.3 min of travel); a window closing after
	// one minute cannot be met from any position in the sequence.
	dests[0].Window = &domain.TimeWindow{
		Start: depart.Add(-time.Hour),
		End:   depart.Add(time.Minute),
	}

	_, err := OptimizeSequence(
		context.Background(),
		domain.Stop{ID: "hub", Lat: 0, Lon: 0},
		dests,
		testVehicle(),
		domain.ObjectiveWeights{Time: 1},
		domain.Constraints{},
		depart,
		domain.FreeFlow(),
		OptimizerConfig{},
	)

	var fe *domain.InfeasibleError
	if !errors.As(err, &fe) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
	if fe.StopID != "a" {
		t.Fatalf("expected violating stop a, got %q", fe.StopID)
	}
}

func TestOptimizeWaitsForWindowOpen(t *testing.T) {
	depart := testDepart()
	open := depart.Add(10 * time.Minute)
	dests := []domain.Stop{
		{
			ID: "a", Lat: 0, Lon: 0.01,
			Window: &domain.TimeWindow{Start: open, End: depart.Add(time.Hour)},
		},
	}

	route, err := OptimizeSequence(
		context.Background(),
		domain.Stop{ID: "hub", Lat: 0, Lon: 0},
		dests,
		testVehicle(),
		domain.ObjectiveWeights{Time: 1},
		domain.Constraints{},
		depart,
		domain.FreeFlow(),
		OptimizerConfig{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !route.Legs[0].ArriveAt.Equal(open) {
		t.Fatalf("arrival = %v, want wait until %v", route.Legs[0].ArriveAt, open)
	}
}

func TestOptimizeMaxDurationInfeasible(t *testing.T) {
	_, err := OptimizeSequence(
		context.Background(),
		domain.Stop{ID: "hub", Lat: 0, Lon: 0},
		lineDests(),
		testVehicle(),
		domain.ObjectiveWeights{Time: 1},
		// The line tour needs ~5.3 minutes of driving.
		domain.Constraints{MaxDuration: 2 * time.Minute},
		testDepart(),
		domain.FreeFlow(),
		OptimizerConfig{},
	)
	if !domain.IsInfeasible(err) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
}
