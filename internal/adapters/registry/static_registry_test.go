package registry

import (
	"os"
	"path/filepath"
	"testing"

	"green-route-service/internal/domain"
)

func TestStaticRegistryBuiltins(t *testing.T) {
	r := NewStaticRegistry()

	diesel, ok := r.Get("diesel_truck")
	if !ok {
		t.Fatal("diesel_truck should be built in")
	}
	if diesel.FuelType != domain.FuelDiesel {
		t.Fatalf("fuel type = %q, want diesel", diesel.FuelType)
	}
	if diesel.EmissionFactorKgPerKm != 0.18 {
		t.Fatalf("diesel factor = %v, want 0.18", diesel.EmissionFactorKgPerKm)
	}

	electric, ok := r.Get("electric_truck")
	if !ok {
		t.Fatal("electric_truck should be built in")
	}
	if electric.EmissionFactorKgPerKm != 0.02 {
		t.Fatalf("electric factor = %v, want 0.02", electric.EmissionFactorKgPerKm)
	}
	// All truck profiles score against the same class reference.
	if electric.ReferenceKgPerKm != diesel.ReferenceKgPerKm {
		t.Fatalf(
			"reference rates differ: %v vs %v",
			electric.ReferenceKgPerKm, diesel.ReferenceKgPerKm,
		)
	}

	if _, ok := r.Get("hovercraft"); ok {
		t.Fatal("unknown profile should miss")
	}
}

func TestStaticRegistryListSorted(t *testing.T) {
	list := NewStaticRegistry().List()
	if len(list) != 4 {
		t.Fatalf("expected 4 built-in profiles, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Fatalf("list not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}

func TestStaticRegistryLoadSeed(t *testing.T) {
	seed := `[{
		"name": "cargo_bike",
		"fuel_type": "electric",
		"capacity": 2,
		"emission_factor_kg_per_km": 0.001,
		"cost_per_km": 0.05,
		"cost_per_hour": 18
	}, {
		"name": "diesel_truck",
		"fuel_type": "diesel",
		"capacity": 20,
		"emission_factor_kg_per_km": 0.21,
		"fuel_l_per_100km": 38,
		"cost_per_km": 0.6,
		"cost_per_hour": 26
	}]`
	path := filepath.Join(t.TempDir(), "vehicles.json")
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewStaticRegistry()
	if err := r.LoadSeed(path); err != nil {
		t.Fatalf("load seed: %v", err)
	}

	bike, ok := r.Get("cargo_bike")
	if !ok {
		t.Fatal("seeded profile should be present")
	}
	// Omitted reference rate falls back to the truck-class default.
	if bike.ReferenceKgPerKm != 0.18 {
		t.Fatalf("seeded reference = %v, want 0.18 default", bike.ReferenceKgPerKm)
	}

	diesel, _ := r.Get("diesel_truck")
	if diesel.Capacity != 20 || diesel.EmissionFactorKgPerKm != 0.21 {
		t.Fatalf("seed should replace the built-in wholesale, got %+v", diesel)
	}
}

func TestStaticRegistryLoadSeedInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.json")
	if err := os.WriteFile(path, []byte(`[{"name": ""}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewStaticRegistry().LoadSeed(path); err == nil {
		t.Fatal("expected an error for an invalid seed profile")
	}
}
