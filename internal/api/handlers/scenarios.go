package handlers

import (
	"net/http"

	"green-route-service/internal/api/dto"
	"green-route-service/internal/domain"
)

// Compare evaluates named what-if variants against a baseline
// optimization and reports per-metric percentage deltas.
func (h *OptimizeHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CompareRequest
	if !decodeStrict(w, r, &req) {
		return
	}
	if len(req.Variants) == 0 {
		writeError(w, r, http.StatusBadRequest, "variants must not be empty")
		return
	}

	domReq, snap, err := h.resolve(r.Context(), req.OptimizeRequest)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	variants := make([]domain.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, domain.Variant{
			Name:              v.Name,
			TrafficMultiplier: v.TrafficMultiplier,
			WeatherMultiplier: v.WeatherMultiplier,
			Vehicle:           v.Vehicle,
		})
	}

	result, err := h.Planner.CompareScenarios(r.Context(), domReq, snap, variants)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.CompareResponse{
		Baseline: outcomeResponse(result.Baseline.Route, result.Baseline.Emissions),
		Variants: make([]dto.VariantResponse, 0, len(result.Variants)),
		Failed:   result.Failures(),
	}
	for _, v := range result.Variants {
		vr := dto.VariantResponse{Name: v.Name, OK: v.OK(), Error: v.Err}
		if v.OK() {
			outcome := outcomeResponse(v.Outcome.Route, v.Outcome.Emissions)
			vr.Outcome = &outcome
			vr.Deltas = &dto.DeltasResponse{
				TimePct:      v.Deltas.TimePct,
				DistancePct:  v.Deltas.DistancePct,
				FuelPct:      v.Deltas.FuelPct,
				CostPct:      v.Deltas.CostPct,
				EmissionsPct: v.Deltas.EmissionsPct,
			}
		}
		res.Variants = append(res.Variants, vr)
	}

	writeJSON(w, r, http.StatusOK, res)
}
