package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"green-route-service/internal/domain"
)

func testRedisCache(t *testing.T) *RedisRouteCache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisRouteCache(mr.Addr(), "", 0, time.Hour)
	if err != nil {
		t.Fatalf("new redis cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func cachedRoute() (*domain.OptimizedRoute, *domain.EmissionResult) {
	route := &domain.OptimizedRoute{
		RouteID:  "r-1",
		Vehicle:  "diesel_truck",
		DepartAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		Sequence: []domain.Stop{
			{ID: "a", Lat: 0, Lon: 0.01},
			{ID: "b", Lat: 0, Lon: 0.02},
		},
		Legs: []domain.Leg{
			{FromID: "hub", ToID: "a", DistanceKm: 1.1, Duration: 80 * time.Second},
			{FromID: "a", ToID: "b", DistanceKm: 1.1, Duration: 80 * time.Second},
		},
		TotalDistanceKm: 2.2,
		TotalDuration:   160 * time.Second,
		FuelLiters:      0.77,
		OperatingCost:   2.3,
		Feasible:        true,
	}
	emissions := &domain.EmissionResult{
		Vehicle:    "diesel_truck",
		BaseKg:     0.396,
		TotalKg:    0.396,
		KgPerKm:    0.18,
		GreenScore: 50,
	}
	return route, emissions
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c := testRedisCache(t)
	ctx := context.Background()
	route, emissions := cachedRoute()

	if err := c.Put(ctx, "fp-1", route, emissions); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, gotEm, hit, err := c.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if got.RouteID != route.RouteID {
		t.Fatalf("route id = %q, want %q", got.RouteID, route.RouteID)
	}
	if len(got.Sequence) != 2 || got.Sequence[0].ID != "a" {
		t.Fatalf("sequence lost in round trip: %+v", got.Sequence)
	}
	if got.TotalDistanceKm != route.TotalDistanceKm {
		t.Fatalf("distance = %v, want %v", got.TotalDistanceKm, route.TotalDistanceKm)
	}
	if gotEm.GreenScore != emissions.GreenScore {
		t.Fatalf("green score = %d, want %d", gotEm.GreenScore, emissions.GreenScore)
	}
}

func TestRedisRouteCacheMiss(t *testing.T) {
	c := testRedisCache(t)

	_, _, hit, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("miss must not be an error, got %v", err)
	}
	if hit {
		t.Fatal("expected a miss")
	}
}

func TestRedisRouteCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisRouteCache(mr.Addr(), "", 0, time.Minute)
	if err != nil {
		t.Fatalf("new redis cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	route, emissions := cachedRoute()
	ctx := context.Background()
	if err := c.Put(ctx, "fp-ttl", route, emissions); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, _, hit, err := c.Get(ctx, "fp-ttl")
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if hit {
		t.Fatal("entry should have expired")
	}
}

func TestRedisRouteCachePutRejectsNil(t *testing.T) {
	c := testRedisCache(t)
	if err := c.Put(context.Background(), "fp", nil, nil); err == nil {
		t.Fatal("expected an error for nil payload")
	}
}
