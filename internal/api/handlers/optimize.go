package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"green-route-service/internal/api/dto"
	"green-route-service/internal/domain"
	"green-route-service/internal/ports"
	"green-route-service/internal/services"
)

// OptimizeHandler exposes the route optimization pipeline. It resolves
// a condition snapshot (inline from the request or via the configured
// source) and hands the pure-compute core an already-fetched value.
type OptimizeHandler struct {
	Planner       *services.Planner
	Conditions    ports.ConditionSource
	DefaultRegion string
	History       HistorySaver
}

// HistorySaver is optional; nil disables persistence.
type HistorySaver interface {
	Save(ctx context.Context, route *domain.OptimizedRoute, emissions *domain.EmissionResult) error
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	domReq, snap, err := h.resolve(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	route, emissions, err := h.Planner.OptimizeRoute(r.Context(), domReq, snap)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if h.History != nil {
		if err := h.History.Save(r.Context(), route, emissions); err != nil {
			// History is best-effort; the optimization already succeeded.
			log.Printf("save route history failed: route_id=%s err=%v", route.RouteID, err)
		}
	}

	writeJSON(w, r, http.StatusOK, outcomeResponse(route, emissions))
}

// resolve converts the wire request into domain values and a resolved
// condition snapshot.
func (h *OptimizeHandler) resolve(ctx context.Context, req dto.OptimizeRequest) (domain.RouteRequest, domain.ConditionSnapshot, error) {
	domReq := toRouteRequest(req)

	if req.Conditions != nil {
		return domReq, domain.ConditionSnapshot{
			ObservedAt:        time.Now().UTC(),
			TrafficMultiplier: req.Conditions.TrafficMultiplier,
			WeatherMultiplier: req.Conditions.WeatherMultiplier,
			EdgeMultipliers:   req.Conditions.EdgeMultipliers,
		}, nil
	}

	region := strings.TrimSpace(req.Region)
	if region == "" {
		region = h.DefaultRegion
	}
	if h.Conditions == nil || region == "" {
		return domReq, domain.FreeFlow(), nil
	}

	snap, err := h.Conditions.Snapshot(ctx, region)
	if err != nil {
		// Degrade to free flow rather than failing the optimization when
		// the conditions feed is down.
		log.Printf("conditions fetch failed: region=%s err=%v", region, err)
		return domReq, domain.FreeFlow(), nil
	}
	return domReq, snap, nil
}

func toRouteRequest(req dto.OptimizeRequest) domain.RouteRequest {
	out := domain.RouteRequest{
		Origin:  toStop(req.Origin),
		Vehicle: req.Vehicle,
		Weights: domain.ObjectiveWeights{Time: 1},
	}
	for _, s := range req.Destinations {
		out.Destinations = append(out.Destinations, toStop(s))
	}
	if req.Weights != nil {
		out.Weights = domain.ObjectiveWeights{
			Time:      req.Weights.Time,
			Distance:  req.Weights.Distance,
			Fuel:      req.Weights.Fuel,
			Emissions: req.Weights.Emissions,
		}
	}
	if req.Constraints != nil {
		out.Constraints = domain.Constraints{
			MaxDistanceKm: req.Constraints.MaxDistanceKm,
			MaxDuration:   time.Duration(req.Constraints.MaxDurationMinutes * float64(time.Minute)),
		}
	}
	if req.DepartAt != nil {
		out.DepartAt = *req.DepartAt
	} else {
		out.DepartAt = time.Now().UTC().Truncate(time.Minute)
	}
	return out
}

func toStop(s dto.StopRequest) domain.Stop {
	stop := domain.Stop{
		ID:          s.ID,
		Lat:         s.Lat,
		Lon:         s.Lon,
		Priority:    s.Priority,
		Demand:      s.Demand,
		ServiceTime: time.Duration(s.ServiceTimeMinutes) * time.Minute,
	}
	if s.WindowStart != nil && s.WindowEnd != nil {
		stop.Window = &domain.TimeWindow{Start: *s.WindowStart, End: *s.WindowEnd}
	}
	return stop
}

// decodeStrict enforces a single well-formed JSON object request body.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
