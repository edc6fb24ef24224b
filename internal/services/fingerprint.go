package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"green-route-service/internal/domain"
)

// Fingerprint derives a stable cache key from everything that affects
// the optimizer's output: stops, vehicle, weights, constraints,
// departure time, and the condition snapshot. Destination input order is
// canonicalized away; any semantic change yields a different key.
func Fingerprint(req domain.RouteRequest, snap domain.ConditionSnapshot) string {
	var b strings.Builder

	writeStop := func(s domain.Stop) {
		fmt.Fprintf(&b, "stop:%s:%.7f:%.7f:%d:%d:%d", s.ID, s.Lat, s.Lon, s.Priority, s.Demand, s.ServiceTime)
		if s.Window != nil {
			fmt.Fprintf(&b, ":%d:%d", s.Window.Start.UnixNano(), s.Window.End.UnixNano())
		}
		b.WriteByte('\n')
	}

	writeStop(req.Origin)
	dests := make([]domain.Stop, len(req.Destinations))
	copy(dests, req.Destinations)
	slices.SortFunc(dests, func(a, c domain.Stop) int {
		return strings.Compare(a.ID, c.ID)
	})
	for _, s := range dests {
		writeStop(s)
	}

	fmt.Fprintf(&b, "vehicle:%s\n", req.Vehicle)
	w := req.Weights.Normalized()
	fmt.Fprintf(&b, "weights:%.9f:%.9f:%.9f:%.9f\n", w.Time, w.Distance, w.Fuel, w.Emissions)
	fmt.Fprintf(&b, "constraints:%.4f:%d\n", req.Constraints.MaxDistanceKm, req.Constraints.MaxDuration)
	fmt.Fprintf(&b, "depart:%d\n", req.DepartAt.UTC().Truncate(time.Second).Unix())

	fmt.Fprintf(&b, "cond:%.6f:%.6f\n", snap.TrafficMultiplier, snap.WeatherMultiplier)
	edges := make([]string, 0, len(snap.EdgeMultipliers))
	for edge := range snap.EdgeMultipliers {
		edges = append(edges, edge)
	}
	sort.Strings(edges)
	for _, edge := range edges {
		fmt.Fprintf(&b, "edge:%s:%.6f\n", edge, snap.EdgeMultipliers[edge])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
