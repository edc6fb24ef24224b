package domain

// Variant is one named what-if configuration: overridden traffic or
// weather multipliers and/or a different vehicle. Nil fields keep the
// baseline value.
type Variant struct {
	Name              string
	TrafficMultiplier *float64
	WeatherMultiplier *float64
	Vehicle           string
}

func (v Variant) Validate() error {
	if v.Name == "" {
		return &InputError{Field: "variant.name", Reason: "must be non-empty"}
	}
	if v.TrafficMultiplier != nil && *v.TrafficMultiplier <= 0 {
		return &InputError{
			Field:  "variant[" + v.Name + "].traffic_multiplier",
			Reason: "must be positive",
		}
	}
	if v.WeatherMultiplier != nil && *v.WeatherMultiplier <= 0 {
		return &InputError{
			Field:  "variant[" + v.Name + "].weather_multiplier",
			Reason: "must be positive",
		}
	}
	return nil
}

// Deltas are signed percentage changes of a variant against the
// baseline. Negative means improvement for time, fuel, cost, and
// emissions; positive means degradation.
type Deltas struct {
	TimePct      float64
	DistancePct  float64
	FuelPct      float64
	CostPct      float64
	EmissionsPct float64
}

// Outcome bundles one pipeline run's route and emissions.
type Outcome struct {
	Route     *OptimizedRoute
	Emissions *EmissionResult
}

// VariantResult is one evaluated variant. Exactly one of Outcome or Err
// is set; failed variants never abort their siblings.
type VariantResult struct {
	Name    string
	Outcome *Outcome
	Deltas  Deltas
	Err     string
}

func (r VariantResult) OK() bool { return r.Err == "" }

// ScenarioResult compares a baseline run against its named variants.
type ScenarioResult struct {
	Baseline Outcome
	Variants []VariantResult
}

// Failures lists the names of variants that could not be evaluated.
func (s ScenarioResult) Failures() []string {
	var failed []string
	for _, v := range s.Variants {
		if !v.OK() {
			failed = append(failed, v.Name)
		}
	}
	return failed
}
