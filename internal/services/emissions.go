package services

import (
	"math"

	"green-route-service/internal/domain"
)

// EmissionSettings holds the scoring constants. They are configuration,
// not business logic; defaults match published per-vehicle references.
type EmissionSettings struct {
	// TreeAbsorptionKgPerYear is the CO2 one tree absorbs per year.
	TreeAbsorptionKgPerYear float64
	// OffsetUSDPerKg is the carbon-offset market price per kg CO2.
	OffsetUSDPerKg float64
	// GreenScoreSlope scales the Green Score penalty: a route emitting
	// exactly the vehicle-class reference rate scores 100 - slope.
	GreenScoreSlope float64
}

func DefaultEmissionSettings() EmissionSettings {
	return EmissionSettings{
		TreeAbsorptionKgPerYear: 22.0,
		OffsetUSDPerKg:          0.02,
		GreenScoreSlope:         50.0,
	}
}

// ScoreRoute converts an optimized route and a vehicle profile into an
// emission breakdown and sustainability rating. Pure function: a route
// can be re-scored against a different vehicle without re-optimizing.
func ScoreRoute(route *domain.OptimizedRoute, vehicle domain.VehicleProfile, settings EmissionSettings) *domain.EmissionResult {
	distKm := route.TotalDistanceKm

	base := distKm * vehicle.EmissionFactorKgPerKm

	// Congestion component: time spent beyond free-flow driving, burned
	// at the idle rate.
	serviceHours := 0.0
	for _, s := range route.Sequence {
		serviceHours += s.ServiceTime.Hours()
	}
	freeFlowHours := distKm / FreeFlowSpeedKmh
	drivingHours := route.TotalDuration.Hours() - serviceHours
	traffic := math.Max(0, drivingHours-freeFlowHours) * vehicle.IdleEmissionKgPerHour

	idle := serviceHours * vehicle.IdleEmissionKgPerHour

	total := base + traffic + idle
	kgPerKm := 0.0
	if distKm > 0 {
		kgPerKm = total / distKm
	}

	return &domain.EmissionResult{
		Vehicle:       vehicle.Name,
		BaseKg:        base,
		TrafficKg:     traffic,
		IdleKg:        idle,
		TotalKg:       total,
		KgPerKm:       kgPerKm,
		GreenScore:    greenScore(kgPerKm, vehicle.ReferenceKgPerKm, settings.GreenScoreSlope),
		TreesPerYear:  total / settings.TreeAbsorptionKgPerYear,
		OffsetCostUSD: total * settings.OffsetUSDPerKg,
	}
}

// greenScore maps CO2 per km onto [0,100]: 100 at zero emissions,
// dropping linearly against the vehicle-class reference rate.
func greenScore(kgPerKm, referenceKgPerKm, slope float64) int {
	score := 100 - slope*(kgPerKm/referenceKgPerKm)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(math.Round(score))
}
