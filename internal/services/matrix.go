package services

import (
	"fmt"
	"math"

	"green-route-service/internal/domain"
)

// FreeFlowSpeedKmh is the assumed urban travel speed before traffic and
// weather penalties are applied.
const FreeFlowSpeedKmh = 50.0

// Matrices holds pairwise travel metrics for one request. Row/column 0
// is the origin; the remaining indexes follow IDs. Time is generally
// asymmetric once per-edge multipliers differ.
type Matrices struct {
	IDs     []string
	Index   map[string]int
	DistKm  [][]float64
	TimeMin [][]float64
}

// BuildMatrices turns stops plus a condition snapshot into pairwise
// distance and travel-time matrices. Pure function of its inputs.
func BuildMatrices(stops []domain.Stop, snap domain.ConditionSnapshot) (*Matrices, error) {
	if len(stops) < 2 {
		return nil, &domain.InputError{
			Field:  "stops",
			Reason: fmt.Sprintf("need at least 2 stops, got %d", len(stops)),
		}
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	n := len(stops)
	ids := make([]string, n)
	index := make(map[string]int, n)
	for i, s := range stops {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[s.ID]; dup {
			return nil, &domain.InputError{
				Field:  "stops",
				Reason: fmt.Sprintf("duplicate stop id %q", s.ID),
			}
		}
		ids[i] = s.ID
		index[s.ID] = i
	}

	dist := make([][]float64, n)
	tm := make([][]float64, n)
	for i := range stops {
		dist[i] = make([]float64, n)
		tm[i] = make([]float64, n)
		for j := range stops {
			if i == j {
				continue
			}
			km := haversineKm(stops[i].Lat, stops[i].Lon, stops[j].Lat, stops[j].Lon)
			baseMin := km / FreeFlowSpeedKmh * 60
			dist[i][j] = km
			tm[i][j] = baseMin * snap.MultiplierFor(stops[i].ID, stops[j].ID)
		}
	}

	return &Matrices{IDs: ids, Index: index, DistKm: dist, TimeMin: tm}, nil
}

const earthRadiusKm = 6371.0

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}
