package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"green-route-service/internal/domain"
)

// StaticRegistry is a fixed, read-only vehicle profile lookup. Profiles
// come from built-in defaults, optionally overridden or extended by a
// JSON seed file.
type StaticRegistry struct {
	profiles map[string]domain.VehicleProfile
}

// truckReferenceKgPerKm is the diesel-class reference rate the Green
// Score measures delivery trucks against.
const truckReferenceKgPerKm = 0.18

// NewStaticRegistry returns the built-in profile set.
func NewStaticRegistry() *StaticRegistry {
	r := &StaticRegistry{profiles: make(map[string]domain.VehicleProfile)}
	for _, p := range defaultProfiles() {
		r.profiles[p.Name] = p
	}
	return r
}

func defaultProfiles() []domain.VehicleProfile {
	return []domain.VehicleProfile{
		{
			Name:                  "diesel_truck",
			FuelType:              domain.FuelDiesel,
			Capacity:              16,
			EmissionFactorKgPerKm: 0.18,
			IdleEmissionKgPerHour: 0.8,
			FuelLPer100Km:         35,
			CostPerKm:             0.55,
			CostPerHour:           25,
			ReferenceKgPerKm:      truckReferenceKgPerKm,
		},
		{
			Name:                  "gasoline_truck",
			FuelType:              domain.FuelGasoline,
			Capacity:              16,
			EmissionFactorKgPerKm: 0.19,
			IdleEmissionKgPerHour: 0.9,
			FuelLPer100Km:         40,
			CostPerKm:             0.60,
			CostPerHour:           25,
			ReferenceKgPerKm:      truckReferenceKgPerKm,
		},
		{
			Name:                  "electric_truck",
			FuelType:              domain.FuelElectric,
			Capacity:              14,
			EmissionFactorKgPerKm: 0.02,
			IdleEmissionKgPerHour: 0,
			FuelLPer100Km:         0,
			CostPerKm:             0.22,
			CostPerHour:           25,
			ReferenceKgPerKm:      truckReferenceKgPerKm,
		},
		{
			Name:                  "hybrid_truck",
			FuelType:              domain.FuelHybrid,
			Capacity:              16,
			EmissionFactorKgPerKm: 0.10,
			IdleEmissionKgPerHour: 0.3,
			FuelLPer100Km:         25,
			CostPerKm:             0.44,
			CostPerHour:           25,
			ReferenceKgPerKm:      truckReferenceKgPerKm,
		},
	}
}

type seedProfile struct {
	Name                  string  `json:"name"`
	FuelType              string  `json:"fuel_type"`
	Capacity              int     `json:"capacity"`
	EmissionFactorKgPerKm float64 `json:"emission_factor_kg_per_km"`
	IdleEmissionKgPerHour float64 `json:"idle_emission_kg_per_hour"`
	FuelLPer100Km         float64 `json:"fuel_l_per_100km"`
	CostPerKm             float64 `json:"cost_per_km"`
	CostPerHour           float64 `json:"cost_per_hour"`
	ReferenceKgPerKm      float64 `json:"reference_kg_per_km"`
}

// LoadSeed merges profiles from a JSON seed file over the built-ins.
// Seeded profiles replace same-named defaults wholesale.
func (r *StaticRegistry) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load vehicle seed: read %q: %w", path, err)
	}

	var seeds []seedProfile
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("load vehicle seed: parse %q: %w", path, err)
	}

	for i, s := range seeds {
		p := domain.VehicleProfile{
			Name:                  strings.TrimSpace(s.Name),
			FuelType:              domain.FuelType(strings.TrimSpace(s.FuelType)),
			Capacity:              s.Capacity,
			EmissionFactorKgPerKm: s.EmissionFactorKgPerKm,
			IdleEmissionKgPerHour: s.IdleEmissionKgPerHour,
			FuelLPer100Km:         s.FuelLPer100Km,
			CostPerKm:             s.CostPerKm,
			CostPerHour:           s.CostPerHour,
			ReferenceKgPerKm:      s.ReferenceKgPerKm,
		}
		if p.ReferenceKgPerKm == 0 {
			p.ReferenceKgPerKm = truckReferenceKgPerKm
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("load vehicle seed: profile %d: %w", i, err)
		}
		r.profiles[p.Name] = p
	}
	return nil
}

func (r *StaticRegistry) Get(name string) (domain.VehicleProfile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

func (r *StaticRegistry) List() []domain.VehicleProfile {
	out := make([]domain.VehicleProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.VehicleProfile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
