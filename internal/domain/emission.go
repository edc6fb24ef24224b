package domain

// EmissionResult is the CO2 breakdown and sustainability rating for one
// optimized route. Derived entirely from an OptimizedRoute and a
// VehicleProfile; never mutated after creation.
type EmissionResult struct {
	Vehicle       string
	BaseKg        float64
	TrafficKg     float64
	IdleKg        float64
	TotalKg       float64
	KgPerKm       float64
	GreenScore    int
	TreesPerYear  float64
	OffsetCostUSD float64
}
