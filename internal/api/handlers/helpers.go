package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"green-route-service/internal/api/dto"
	"green-route-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: bad
// input is the caller's fault, infeasibility is a semantic rejection,
// everything else is internal.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsInput(err):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case domain.IsInfeasible(err):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func routeResponse(route *domain.OptimizedRoute) dto.RouteResponse {
	sequence := make([]string, 0, len(route.Sequence))
	for _, s := range route.Sequence {
		sequence = append(sequence, s.ID)
	}
	legs := make([]dto.LegResponse, 0, len(route.Legs))
	for _, l := range route.Legs {
		legs = append(legs, dto.LegResponse{
			FromID:          l.FromID,
			ToID:            l.ToID,
			DistanceKm:      l.DistanceKm,
			DurationMinutes: l.Duration.Minutes(),
			ArriveAt:        l.ArriveAt,
		})
	}
	return dto.RouteResponse{
		RouteID:         route.RouteID,
		Vehicle:         route.Vehicle,
		DepartAt:        route.DepartAt,
		Sequence:        sequence,
		Legs:            legs,
		TotalDistanceKm: route.TotalDistanceKm,
		TotalMinutes:    route.TotalDuration.Minutes(),
		FuelLiters:      route.FuelLiters,
		OperatingCost:   route.OperatingCost,
		Feasible:        route.Feasible,
	}
}

func emissionResponse(e *domain.EmissionResult) dto.EmissionResponse {
	return dto.EmissionResponse{
		Vehicle:       e.Vehicle,
		BaseKg:        e.BaseKg,
		TrafficKg:     e.TrafficKg,
		IdleKg:        e.IdleKg,
		TotalKg:       e.TotalKg,
		KgPerKm:       e.KgPerKm,
		GreenScore:    e.GreenScore,
		TreesPerYear:  e.TreesPerYear,
		OffsetCostUSD: e.OffsetCostUSD,
	}
}

func outcomeResponse(route *domain.OptimizedRoute, e *domain.EmissionResult) dto.OptimizeResponse {
	return dto.OptimizeResponse{
		Route:     routeResponse(route),
		Emissions: emissionResponse(e),
	}
}
