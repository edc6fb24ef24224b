package services

import (
	"math"
	"testing"

	"green-route-service/internal/domain"
)

func TestBuildMatricesDistanceAndTime(t *testing.T) {
	// One degree of longitude on the equator is ~111.19 km.
	stops := []domain.Stop{
		{ID: "hub", Lat: 0, Lon: 0},
		{ID: "a", Lat: 0, Lon: 1},
	}

	mat, err := BuildMatrices(stops, domain.FreeFlow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	km := mat.DistKm[0][1]
	if math.Abs(km-111.19) > 0.5 {
		t.Fatalf("distance = %v km, want ~111.19", km)
	}
	if math.Abs(mat.DistKm[0][1]-mat.DistKm[1][0]) > 1e-9 {
		t.Fatal("great-circle distance should be symmetric")
	}

	wantMin := km / FreeFlowSpeedKmh * 60
	if math.Abs(mat.TimeMin[0][1]-wantMin) > 1e-9 {
		t.Fatalf("time = %v min, want %v", mat.TimeMin[0][1], wantMin)
	}
	if mat.DistKm[0][0] != 0 || mat.TimeMin[1][1] != 0 {
		t.Fatal("diagonal must be zero")
	}
}

func TestBuildMatricesEdgeMultiplierAsymmetry(t *testing.T) {
	stops := []domain.Stop{
		{ID: "hub", Lat: 0, Lon: 0},
		{ID: "a", Lat: 0, Lon: 1},
	}
	snap := domain.ConditionSnapshot{
		TrafficMultiplier: 1.0,
		WeatherMultiplier: 1.0,
		EdgeMultipliers:   map[string]float64{"hub|a": 2.0},
	}

	mat, err := BuildMatrices(stops, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(mat.TimeMin[0][1]-2*mat.TimeMin[1][0]) > 1e-9 {
		t.Fatalf(
			"expected outbound time %v to be twice return time %v",
			mat.TimeMin[0][1], mat.TimeMin[1][0],
		)
	}
}

func TestBuildMatricesInputErrors(t *testing.T) {
	one := []domain.Stop{{ID: "hub"}}
	if _, err := BuildMatrices(one, domain.FreeFlow()); !domain.IsInput(err) {
		t.Fatalf("expected InputError for single stop, got %v", err)
	}

	badLat := []domain.Stop{
		{ID: "hub", Lat: 95, Lon: 0},
		{ID: "a", Lat: 0, Lon: 0},
	}
	if _, err := BuildMatrices(badLat, domain.FreeFlow()); !domain.IsInput(err) {
		t.Fatalf("expected InputError for bad latitude, got %v", err)
	}

	dup := []domain.Stop{
		{ID: "a", Lat: 0, Lon: 0},
		{ID: "a", Lat: 0, Lon: 1},
	}
	if _, err := BuildMatrices(dup, domain.FreeFlow()); !domain.IsInput(err) {
		t.Fatalf("expected InputError for duplicate ids, got %v", err)
	}

	two := []domain.Stop{
		{ID: "hub", Lat: 0, Lon: 0},
		{ID: "a", Lat: 0, Lon: 1},
	}
	bad := domain.ConditionSnapshot{TrafficMultiplier: 0, WeatherMultiplier: 1}
	if _, err := BuildMatrices(two, bad); !domain.IsInput(err) {
		t.Fatalf("expected InputError for zero multiplier, got %v", err)
	}
}
