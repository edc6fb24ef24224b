package dto

type VariantRequest struct {
	Name              string   `json:"name"`
	TrafficMultiplier *float64 `json:"traffic_multiplier"`
	WeatherMultiplier *float64 `json:"weather_multiplier"`
	Vehicle           string   `json:"vehicle"`
}

type CompareRequest struct {
	OptimizeRequest
	Variants []VariantRequest `json:"variants"`
}

type DeltasResponse struct {
	TimePct      float64 `json:"time_pct"`
	DistancePct  float64 `json:"distance_pct"`
	FuelPct      float64 `json:"fuel_pct"`
	CostPct      float64 `json:"cost_pct"`
	EmissionsPct float64 `json:"emissions_pct"`
}

type VariantResponse struct {
	Name    string            `json:"name"`
	OK      bool              `json:"ok"`
	Error   string            `json:"error,omitempty"`
	Outcome *OptimizeResponse `json:"outcome,omitempty"`
	Deltas  *DeltasResponse   `json:"deltas,omitempty"`
}

type CompareResponse struct {
	Baseline OptimizeResponse  `json:"baseline"`
	Variants []VariantResponse `json:"variants"`
	Failed   []string          `json:"failed_variants,omitempty"`
}
