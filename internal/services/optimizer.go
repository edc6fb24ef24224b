package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"green-route-service/internal/domain"
)

// OptimizerConfig bounds the search. Zero values fall back to defaults.
type OptimizerConfig struct {
	// ExactStopLimit is the largest destination count handed to the exact
	// branch-and-bound search; larger requests go straight to the heuristic.
	ExactStopLimit int
	// Budget is the wall-clock limit for one optimization call. The exact
	// search aborts into the heuristic when it expires.
	Budget time.Duration
	// TwoOptMaxPasses caps local-search improvement sweeps.
	TwoOptMaxPasses int
}

const (
	defaultExactStopLimit  = 12
	defaultBudget          = 2 * time.Second
	defaultTwoOptMaxPasses = 64
)

func (c OptimizerConfig) withDefaults() OptimizerConfig {
	if c.ExactStopLimit <= 0 {
		c.ExactStopLimit = defaultExactStopLimit
	}
	if c.Budget <= 0 {
		c.Budget = defaultBudget
	}
	if c.TwoOptMaxPasses <= 0 {
		c.TwoOptMaxPasses = defaultTwoOptMaxPasses
	}
	return c
}

// OptimizeSequence chooses the visiting order over dests minimizing the
// weighted objective, subject to capacity, time windows, and route
// limits. Small instances are solved exactly; larger ones, or exact
// searches that exhaust their budget, use greedy construction plus 2-opt
// improvement. Given identical inputs the returned sequence is
// identical: candidates are scanned in ascending stop-ID order and only
// strict improvements replace the incumbent, so ties resolve to the
// lowest stop ID.
func OptimizeSequence(
	ctx context.Context,
	origin domain.Stop,
	dests []domain.Stop,
	vehicle domain.VehicleProfile,
	weights domain.ObjectiveWeights,
	cons domain.Constraints,
	departAt time.Time,
	snap domain.ConditionSnapshot,
	cfg OptimizerConfig,
) (*domain.OptimizedRoute, error) {
	cfg = cfg.withDefaults()

	if len(dests) == 0 {
		return nil, &domain.InputError{Field: "destinations", Reason: "must contain at least one stop"}
	}

	// Sequencing cannot repair a capacity overflow on a single vehicle:
	// the running load is a monotone cumulative sum.
	totalDemand := 0
	for _, s := range dests {
		totalDemand += s.Demand
	}
	if totalDemand > vehicle.Capacity {
		return nil, &domain.InfeasibleError{
			Reason: fmt.Sprintf("total demand %d exceeds vehicle capacity %d", totalDemand, vehicle.Capacity),
		}
	}

	// Stable problem ordering for deterministic output.
	ordered := make([]domain.Stop, len(dests))
	copy(ordered, dests)
	slices.SortFunc(ordered, func(a, b domain.Stop) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	stops := append([]domain.Stop{origin}, ordered...)
	mat, err := BuildMatrices(stops, snap)
	if err != nil {
		return nil, err
	}

	s := newSolver(origin, ordered, mat, vehicle, weights.Normalized(), cons, departAt, cfg)

	deadline := time.Now().Add(cfg.Budget)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	s.deadline = deadline

	var order []int
	if len(ordered) <= cfg.ExactStopLimit {
		order, err = s.solveExact(ctx)
		if errors.Is(err, domain.ErrBudgetExceeded) {
			// Internal signal only: answer with the heuristic instead.
			order, err = s.solveHeuristic(ctx)
		}
	} else {
		order, err = s.solveHeuristic(ctx)
	}
	if err != nil {
		return nil, err
	}

	return s.buildRoute(order, vehicle), nil
}

// solver holds one immutable problem instance plus search scratch state.
// Node 0 is the origin; node i+1 is dests[i] (sorted by ID).
type solver struct {
	origin   domain.Stop
	dests    []domain.Stop
	mat      *Matrices
	cost     [][]float64
	departAt time.Time
	maxMin       float64
	maxKm        float64
	deadline     time.Time
	twoOptPasses int

	// scratch
	ctx      context.Context
	steps    int
	cur      []int
	visited  []bool
	best     []int
	bestCost float64
	// last stop whose window could not be met, for error detail
	violatedStop string
}

func newSolver(
	origin domain.Stop,
	dests []domain.Stop,
	mat *Matrices,
	vehicle domain.VehicleProfile,
	w domain.ObjectiveWeights,
	cons domain.Constraints,
	departAt time.Time,
	cfg OptimizerConfig,
) *solver {
	n := len(mat.IDs)
	cost := make([][]float64, n)
	for i := 0; i < n; i++ {
		cost[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			km := mat.DistKm[i][j]
			// Driving cost only. Waiting and service time shift the
			// schedule and bound feasibility but do not depend on order.
			cost[i][j] = w.Time*mat.TimeMin[i][j] +
				w.Distance*km +
				w.Fuel*km*vehicle.FuelLPer100Km/100 +
				w.Emissions*km*vehicle.EmissionFactorKgPerKm
		}
	}

	maxMin := math.Inf(1)
	if cons.MaxDuration > 0 {
		maxMin = cons.MaxDuration.Minutes()
	}
	maxKm := math.Inf(1)
	if cons.MaxDistanceKm > 0 {
		maxKm = cons.MaxDistanceKm
	}

	return &solver{
		origin:       origin,
		dests:        dests,
		mat:          mat,
		cost:         cost,
		departAt:     departAt,
		maxMin:       maxMin,
		maxKm:        maxKm,
		twoOptPasses: cfg.TwoOptMaxPasses,
		cur:          make([]int, 0, len(dests)),
		visited:      make([]bool, len(dests)),
		bestCost:     math.Inf(1),
	}
}

// extend simulates appending dest index next after node at with elapsed
// minutes and km so far. Returns the elapsed minutes after service at
// next and whether the extension is feasible.
func (s *solver) extend(at, next int, elapsedMin, km float64) (afterMin, afterKm float64, ok bool) {
	node := next + 1
	arr := elapsedMin + s.mat.TimeMin[at][node]
	afterKm = km + s.mat.DistKm[at][node]
	if afterKm > s.maxKm {
		return 0, 0, false
	}

	stop := s.dests[next]
	if w := stop.Window; w != nil {
		arriveAt := s.departAt.Add(minutesToDuration(arr))
		if arriveAt.Before(w.Start) {
			// Wait-if-early.
			arr = w.Start.Sub(s.departAt).Minutes()
		} else if arriveAt.After(w.End) {
			s.violatedStop = stop.ID
			return 0, 0, false
		}
	}

	afterMin = arr + stop.ServiceTime.Minutes()
	if afterMin > s.maxMin {
		return 0, 0, false
	}
	return afterMin, afterKm, true
}

// solveExact runs depth-first branch-and-bound over all feasible
// permutations, pruned by the incumbent cost and deadline-checked.
// Time-window infeasible prefixes are cut from the search space.
func (s *solver) solveExact(ctx context.Context) ([]int, error) {
	if time.Now().After(s.deadline) {
		return nil, domain.ErrBudgetExceeded
	}

	s.ctx = ctx
	s.best = nil
	s.bestCost = math.Inf(1)

	if err := s.search(0, 0, 0, 0); err != nil {
		return nil, err
	}
	if s.best == nil {
		return nil, s.infeasible()
	}
	return s.best, nil
}

func (s *solver) search(at int, elapsedMin, km, costSoFar float64) error {
	s.steps++
	if s.steps&255 == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if time.Now().After(s.deadline) {
			return domain.ErrBudgetExceeded
		}
	}

	if len(s.cur) == len(s.dests) {
		if costSoFar < s.bestCost {
			s.bestCost = costSoFar
			s.best = slices.Clone(s.cur)
		}
		return nil
	}

	for next := range s.dests {
		if s.visited[next] {
			continue
		}
		node := next + 1
		nextCost := costSoFar + s.cost[at][node]
		if nextCost >= s.bestCost {
			continue
		}
		afterMin, afterKm, ok := s.extend(at, next, elapsedMin, km)
		if !ok {
			continue
		}

		s.visited[next] = true
		s.cur = append(s.cur, next)
		if err := s.search(node, afterMin, afterKm, nextCost); err != nil {
			return err
		}
		s.cur = s.cur[:len(s.cur)-1]
		s.visited[next] = false
	}
	return nil
}

// solveHeuristic greedily appends the cheapest feasible next stop, then
// improves the tour with 2-opt segment reversals until no improving
// feasible move remains or the pass/time cap is hit.
func (s *solver) solveHeuristic(ctx context.Context) ([]int, error) {
	n := len(s.dests)
	order := make([]int, 0, n)
	used := make([]bool, n)

	at := 0
	elapsed, km := 0.0, 0.0
	for len(order) < n {
		bestNext := -1
		bestCost := math.Inf(1)
		var bestMin, bestKm float64
		// Ascending index scan is ascending stop-ID order; strict
		// improvement keeps the lowest ID on ties.
		for next := 0; next < n; next++ {
			if used[next] {
				continue
			}
			afterMin, afterKm, ok := s.extend(at, next, elapsed, km)
			if !ok {
				continue
			}
			if c := s.cost[at][next+1]; c < bestCost {
				bestCost = c
				bestNext = next
				bestMin, bestKm = afterMin, afterKm
			}
		}
		if bestNext < 0 {
			return nil, s.infeasible()
		}
		used[bestNext] = true
		order = append(order, bestNext)
		at = bestNext + 1
		elapsed, km = bestMin, bestKm
	}

	curCost, _, _, feasible := s.evaluate(order)
	if !feasible {
		return nil, s.infeasible()
	}

	for pass := 0; pass < s.twoOptPasses; pass++ {
		if time.Now().After(s.deadline) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		improved := false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				candidate := slices.Clone(order)
				slices.Reverse(candidate[i : j+1])
				cost, _, _, ok := s.evaluate(candidate)
				if ok && cost < curCost-1e-12 {
					order = candidate
					curCost = cost
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return order, nil
}

// evaluate simulates a full candidate order and returns its driving
// cost, total elapsed minutes, and total km.
func (s *solver) evaluate(order []int) (cost, elapsedMin, km float64, ok bool) {
	at := 0
	for _, next := range order {
		afterMin, afterKm, feasible := s.extend(at, next, elapsedMin, km)
		if !feasible {
			return 0, 0, 0, false
		}
		cost += s.cost[at][next+1]
		elapsedMin, km = afterMin, afterKm
		at = next + 1
	}
	return cost, elapsedMin, km, true
}

func (s *solver) infeasible() error {
	if s.violatedStop != "" {
		return &domain.InfeasibleError{
			Reason: "arrival time window cannot be met",
			StopID: s.violatedStop,
		}
	}
	return &domain.InfeasibleError{Reason: "no sequence satisfies the route constraints"}
}

// buildRoute expands a feasible visiting order into legs, arrival times,
// and aggregate metrics.
func (s *solver) buildRoute(order []int, vehicle domain.VehicleProfile) *domain.OptimizedRoute {
	sequence := make([]domain.Stop, 0, len(order))
	legs := make([]domain.Leg, 0, len(order))

	at := 0
	elapsed, km := 0.0, 0.0
	for _, next := range order {
		node := next + 1
		stop := s.dests[next]

		legMin := s.mat.TimeMin[at][node]
		legKm := s.mat.DistKm[at][node]
		arr := elapsed + legMin
		if w := stop.Window; w != nil {
			if arriveAt := s.departAt.Add(minutesToDuration(arr)); arriveAt.Before(w.Start) {
				arr = w.Start.Sub(s.departAt).Minutes()
			}
		}

		legs = append(legs, domain.Leg{
			FromID:     s.mat.IDs[at],
			ToID:       stop.ID,
			DistanceKm: legKm,
			Duration:   minutesToDuration(arr - elapsed),
			ArriveAt:   s.departAt.Add(minutesToDuration(arr)),
		})
		sequence = append(sequence, stop)

		elapsed = arr + stop.ServiceTime.Minutes()
		km += legKm
		at = node
	}

	total := minutesToDuration(elapsed)
	return &domain.OptimizedRoute{
		Vehicle:         vehicle.Name,
		DepartAt:        s.departAt,
		Sequence:        sequence,
		Legs:            legs,
		TotalDistanceKm: km,
		TotalDuration:   total,
		FuelLiters:      km * vehicle.FuelLPer100Km / 100,
		OperatingCost:   km*vehicle.CostPerKm + total.Hours()*vehicle.CostPerHour,
		Feasible:        true,
	}
}

func minutesToDuration(min float64) time.Duration {
	return time.Duration(min * float64(time.Minute))
}
