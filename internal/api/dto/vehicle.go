package dto

type VehicleResponse struct {
	Name                  string  `json:"name"`
	FuelType              string  `json:"fuel_type"`
	Capacity              int     `json:"capacity"`
	EmissionFactorKgPerKm float64 `json:"emission_factor_kg_per_km"`
	IdleEmissionKgPerHour float64 `json:"idle_emission_kg_per_hour"`
	FuelLPer100Km         float64 `json:"fuel_l_per_100km"`
	CostPerKm             float64 `json:"cost_per_km"`
	CostPerHour           float64 `json:"cost_per_hour"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}
