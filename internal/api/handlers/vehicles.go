package handlers

import (
	"net/http"

	"green-route-service/internal/api/dto"
	"green-route-service/internal/ports"
)

// VehicleHandler exposes read-only vehicle profile lookups.
type VehicleHandler struct {
	Registry ports.VehicleRegistry
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	profiles := h.Registry.List()
	res := dto.ListVehiclesResponse{
		Vehicles: make([]dto.VehicleResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			Name:                  p.Name,
			FuelType:              string(p.FuelType),
			Capacity:              p.Capacity,
			EmissionFactorKgPerKm: p.EmissionFactorKgPerKm,
			IdleEmissionKgPerHour: p.IdleEmissionKgPerHour,
			FuelLPer100Km:         p.FuelLPer100Km,
			CostPerKm:             p.CostPerKm,
			CostPerHour:           p.CostPerHour,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
