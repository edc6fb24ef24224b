package domain

import "fmt"

// FuelType enumerates supported vehicle power sources.
type FuelType string

const (
	FuelDiesel   FuelType = "diesel"
	FuelGasoline FuelType = "gasoline"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

// VehicleProfile describes a delivery vehicle for routing and scoring.
// Profiles are looked up by name from a registry and are read-only
// during optimization.
type VehicleProfile struct {
	Name                  string
	FuelType              FuelType
	Capacity              int
	EmissionFactorKgPerKm float64
	IdleEmissionKgPerHour float64
	FuelLPer100Km         float64
	CostPerKm             float64
	CostPerHour           float64
	// Class reference rate (kg CO2 per km) the Green Score is measured against.
	ReferenceKgPerKm float64
}

func (v VehicleProfile) Validate() error {
	if v.Name == "" {
		return &InputError{Field: "vehicle.name", Reason: "must be non-empty"}
	}
	switch v.FuelType {
	case FuelDiesel, FuelGasoline, FuelElectric, FuelHybrid:
	default:
		return &InputError{
			Field:  "vehicle.fuel_type",
			Reason: fmt.Sprintf("unknown fuel type %q", v.FuelType),
		}
	}
	if v.Capacity <= 0 {
		return &InputError{Field: "vehicle.capacity", Reason: "must be positive"}
	}
	if v.EmissionFactorKgPerKm < 0 || v.IdleEmissionKgPerHour < 0 {
		return &InputError{Field: "vehicle.emissions", Reason: "emission rates must not be negative"}
	}
	if v.ReferenceKgPerKm <= 0 {
		return &InputError{Field: "vehicle.reference_kg_per_km", Reason: "must be positive"}
	}
	return nil
}
