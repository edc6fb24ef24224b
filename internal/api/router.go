package api

import (
	"net/http"

	"green-route-service/internal/api/handlers"
	"green-route-service/internal/platform/metrics"
	"green-route-service/internal/ports"
	"green-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	planner *services.Planner,
	conditions ports.ConditionSource,
	registry ports.VehicleRegistry,
	history handlers.HistorySaver,
	defaultRegion string,
) http.Handler {
	mux := http.NewServeMux()

	optHandler := &handlers.OptimizeHandler{
		Planner:       planner,
		Conditions:    conditions,
		DefaultRegion: defaultRegion,
		History:       history,
	}
	vehicleHandler := &handlers.VehicleHandler{Registry: registry}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/vehicles", vehicleHandler.List)
	mux.HandleFunc("/routes/optimize", optHandler.Optimize)
	mux.HandleFunc("/scenarios/compare", optHandler.Compare)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(mux)
}
