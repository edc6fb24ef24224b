package dto

import "time"

type StopRequest struct {
	ID                 string     `json:"id"`
	Lat                float64    `json:"lat"`
	Lon                float64    `json:"lon"`
	Priority           int        `json:"priority"`
	Demand             int        `json:"demand"`
	ServiceTimeMinutes int        `json:"service_time_minutes"`
	WindowStart        *time.Time `json:"window_start"`
	WindowEnd          *time.Time `json:"window_end"`
}

type WeightsRequest struct {
	Time      float64 `json:"time"`
	Distance  float64 `json:"distance"`
	Fuel      float64 `json:"fuel"`
	Emissions float64 `json:"emissions"`
}

type ConstraintsRequest struct {
	MaxDistanceKm      float64 `json:"max_distance_km"`
	MaxDurationMinutes float64 `json:"max_duration_minutes"`
}

type ConditionsRequest struct {
	TrafficMultiplier float64            `json:"traffic_multiplier"`
	WeatherMultiplier float64            `json:"weather_multiplier"`
	EdgeMultipliers   map[string]float64 `json:"edge_multipliers"`
}

type OptimizeRequest struct {
	Origin       StopRequest         `json:"origin"`
	Destinations []StopRequest       `json:"destinations"`
	Vehicle      string              `json:"vehicle"`
	Weights      *WeightsRequest     `json:"weights"`
	Constraints  *ConstraintsRequest `json:"constraints"`
	DepartAt     *time.Time          `json:"depart_at"`
	// Either an inline snapshot or a region key for the configured
	// condition source. Inline wins.
	Conditions *ConditionsRequest `json:"conditions"`
	Region     string             `json:"region"`
}

type LegResponse struct {
	FromID          string    `json:"from_id"`
	ToID            string    `json:"to_id"`
	DistanceKm      float64   `json:"distance_km"`
	DurationMinutes float64   `json:"duration_minutes"`
	ArriveAt        time.Time `json:"arrive_at"`
}

type RouteResponse struct {
	RouteID         string        `json:"route_id"`
	Vehicle         string        `json:"vehicle"`
	DepartAt        time.Time     `json:"depart_at"`
	Sequence        []string      `json:"sequence"`
	Legs            []LegResponse `json:"legs"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	TotalMinutes    float64       `json:"total_minutes"`
	FuelLiters      float64       `json:"fuel_liters"`
	OperatingCost   float64       `json:"operating_cost_usd"`
	Feasible        bool          `json:"feasible"`
}

type EmissionResponse struct {
	Vehicle       string  `json:"vehicle"`
	BaseKg        float64 `json:"base_kg"`
	TrafficKg     float64 `json:"traffic_kg"`
	IdleKg        float64 `json:"idle_kg"`
	TotalKg       float64 `json:"total_kg"`
	KgPerKm       float64 `json:"kg_per_km"`
	GreenScore    int     `json:"green_score"`
	TreesPerYear  float64 `json:"trees_per_year"`
	OffsetCostUSD float64 `json:"offset_cost_usd"`
}

type OptimizeResponse struct {
	Route     RouteResponse    `json:"route"`
	Emissions EmissionResponse `json:"emissions"`
}
