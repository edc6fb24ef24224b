package services

import (
	"context"
	"fmt"
	"sync"

	"green-route-service/internal/domain"
	"green-route-service/internal/platform/metrics"
)

// maxConcurrentVariants bounds the scenario fan-out so one comparison
// cannot monopolize the process.
const maxConcurrentVariants = 5

type variantOutcome struct {
	index   int
	outcome *domain.Outcome
	err     error
}

// CompareScenarios runs the pipeline once for the baseline snapshot,
// then once per named variant with its overrides applied. Variants are
// independent: they evaluate concurrently, a failed variant records its
// error without aborting siblings, and cancelling ctx stops variants
// that have not finished. Only a failed baseline fails the comparison.
func (p *Planner) CompareScenarios(
	ctx context.Context,
	req domain.RouteRequest,
	baseline domain.ConditionSnapshot,
	variants []domain.Variant,
) (*domain.ScenarioResult, error) {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[v.Name]; dup {
			return nil, &domain.InputError{
				Field:  "variants",
				Reason: fmt.Sprintf("duplicate variant name %q", v.Name),
			}
		}
		seen[v.Name] = struct{}{}
	}

	baseRoute, baseEmissions, err := p.OptimizeRoute(ctx, req, baseline)
	if err != nil {
		return nil, fmt.Errorf("compare scenarios: baseline: %w", err)
	}
	base := domain.Outcome{Route: baseRoute, Emissions: baseEmissions}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, maxConcurrentVariants)
	resultsCh := make(chan variantOutcome, len(variants))
	var wg sync.WaitGroup

	for i, v := range variants {
		wg.Add(1)
		go func(idx int, variant domain.Variant) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				resultsCh <- variantOutcome{index: idx, err: err}
				return
			}

			route, emissions, err := p.OptimizeRoute(ctx, applyVariantRequest(req, variant), applyVariantSnapshot(baseline, variant))
			if err != nil {
				resultsCh <- variantOutcome{index: idx, err: err}
				return
			}
			resultsCh <- variantOutcome{
				index:   idx,
				outcome: &domain.Outcome{Route: route, Emissions: emissions},
			}
		}(i, v)
	}

	wg.Wait()
	close(resultsCh)

	results := make([]domain.VariantResult, len(variants))
	for out := range resultsCh {
		r := domain.VariantResult{Name: variants[out.index].Name}
		if out.err != nil {
			r.Err = out.err.Error()
			metrics.ScenarioVariantFailures.Inc()
		} else {
			r.Outcome = out.outcome
			r.Deltas = computeDeltas(base, *out.outcome)
		}
		results[out.index] = r
	}

	return &domain.ScenarioResult{Baseline: base, Variants: results}, nil
}

func applyVariantRequest(req domain.RouteRequest, v domain.Variant) domain.RouteRequest {
	if v.Vehicle != "" {
		req.Vehicle = v.Vehicle
	}
	return req
}

func applyVariantSnapshot(snap domain.ConditionSnapshot, v domain.Variant) domain.ConditionSnapshot {
	if v.TrafficMultiplier != nil {
		snap.TrafficMultiplier = *v.TrafficMultiplier
	}
	if v.WeatherMultiplier != nil {
		snap.WeatherMultiplier = *v.WeatherMultiplier
	}
	return snap
}

// computeDeltas returns signed percentage changes against the baseline:
// negative means the variant improves on the metric.
func computeDeltas(base, variant domain.Outcome) domain.Deltas {
	return domain.Deltas{
		TimePct:      pctChange(base.Route.TotalDuration.Minutes(), variant.Route.TotalDuration.Minutes()),
		DistancePct:  pctChange(base.Route.TotalDistanceKm, variant.Route.TotalDistanceKm),
		FuelPct:      pctChange(base.Route.FuelLiters, variant.Route.FuelLiters),
		CostPct:      pctChange(base.Route.OperatingCost, variant.Route.OperatingCost),
		EmissionsPct: pctChange(base.Emissions.TotalKg, variant.Emissions.TotalKg),
	}
}

func pctChange(base, variant float64) float64 {
	if base == 0 {
		if variant == 0 {
			return 0
		}
		return 100
	}
	return (variant - base) / base * 100
}
