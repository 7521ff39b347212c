package model

import (
	"fmt"
)

// IncomeParams describes the discretized permanent/transitory income
// process. Both shocks are mean-one lognormal; the transitory shock is
// optionally mixed with an unemployment state.
type IncomeParams struct {
	// PermShkCount and TranShkCount are equiprobable atom counts.
	PermShkCount int
	TranShkCount int
	// PermShkStd and TranShkStd are standard deviations of log shocks.
	PermShkStd float64
	TranShkStd float64
	// UnempPrb is the probability of the unemployment state; IncUnemp the
	// transitory income received in it.
	UnempPrb float64
	IncUnemp float64
}

func (ip IncomeParams) Validate() error {
	if ip.PermShkCount < 1 {
		return fmt.Errorf("PermShkCount must be >= 1, got %d", ip.PermShkCount)
	}
	if ip.TranShkCount < 1 {
		return fmt.Errorf("TranShkCount must be >= 1, got %d", ip.TranShkCount)
	}
	if ip.PermShkStd < 0 {
		return fmt.Errorf("PermShkStd must be >= 0, got %g", ip.PermShkStd)
	}
	if ip.TranShkStd < 0 {
		return fmt.Errorf("TranShkStd must be >= 0, got %g", ip.TranShkStd)
	}
	if ip.UnempPrb < 0 || ip.UnempPrb >= 1 {
		return fmt.Errorf("UnempPrb must be in [0, 1), got %g", ip.UnempPrb)
	}
	if ip.IncUnemp < 0 {
		return fmt.Errorf("IncUnemp must be >= 0, got %g", ip.IncUnemp)
	}
	return nil
}

// GridParams describes the exponentially nested post-decision asset grid.
type GridParams struct {
	Min float64
	Max float64
	// Count is the number of gridpoints.
	Count int
	// NestFac is the exponential nesting depth; 0 gives a uniform grid.
	NestFac int
}

func (gp GridParams) Validate() error {
	if gp.Min < 0 {
		return fmt.Errorf("grid Min must be >= 0, got %g", gp.Min)
	}
	if gp.Max <= gp.Min {
		return fmt.Errorf("grid Max must be > Min, got Min=%g Max=%g", gp.Min, gp.Max)
	}
	if gp.Count < 2 {
		return fmt.Errorf("grid Count must be >= 2, got %d", gp.Count)
	}
	if gp.NestFac < 0 {
		return fmt.Errorf("grid NestFac must be >= 0, got %d", gp.NestFac)
	}
	return nil
}

// RiskyParams describes the lognormal risky return used by the
// stochastic-return extension.
type RiskyParams struct {
	// Avg is the expected gross return, Std its standard deviation.
	Avg float64
	Std float64
}

func (rp RiskyParams) Validate() error {
	if rp.Avg <= 0 {
		return fmt.Errorf("risky Avg must be > 0, got %g", rp.Avg)
	}
	if rp.Std < 0 {
		return fmt.Errorf("risky Std must be >= 0, got %g", rp.Std)
	}
	return nil
}

// DefaultRisky is the standard risky-return calibration: 8 percent mean
// return with 20 percent standard deviation.
func DefaultRisky() RiskyParams {
	return RiskyParams{Avg: 1.08, Std: 0.20}
}

// Scenario bundles everything a solve needs: preferences and prices, the
// income process, the asset grid, the solver selection and its options.
// This is the canonical input object the config file, the CLI flags and
// the API requests all reduce to.
type Scenario struct {
	Params Params
	Income IncomeParams
	Grid   GridParams
	Risky  RiskyParams

	Method  Method
	Periods int
	// Cubic selects cubic Hermite interpolation of the consumption rule.
	Cubic bool
	// VFunc requests construction of the value function.
	VFunc bool
	// Extrap enables the theory-consistent limiting extrapolation of the
	// EGM consumption function.
	Extrap bool
}

func (s Scenario) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if err := s.Income.Validate(); err != nil {
		return fmt.Errorf("income: %w", err)
	}
	if err := s.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if err := s.Risky.Validate(); err != nil {
		return fmt.Errorf("risky: %w", err)
	}
	if _, err := ParseMethod(string(s.Method)); err != nil {
		return err
	}
	if s.Periods < 1 {
		return fmt.Errorf("Periods must be >= 1, got %d", s.Periods)
	}
	return nil
}

// DefaultScenario is the baseline calibration: patient-but-impatient CRRA
// consumer, 7x7 lognormal shocks with an unemployment state, 48-point
// nested asset grid, one period of the moderation solver.
func DefaultScenario() Scenario {
	boroCnst := 0.0
	return Scenario{
		Params: Params{
			CRRA:        2.0,
			DiscFac:     0.96,
			LivPrb:      0.98,
			Rfree:       1.03,
			PermGroFac:  1.01,
			BoroCnstArt: &boroCnst,
		},
		Income: IncomeParams{
			PermShkCount: 7,
			TranShkCount: 7,
			PermShkStd:   0.1,
			TranShkStd:   0.1,
			UnempPrb:     0.05,
			IncUnemp:     0.3,
		},
		Grid: GridParams{
			Min:     0.001,
			Max:     20,
			Count:   48,
			NestFac: 3,
		},
		Risky:   DefaultRisky(),
		Method:  MethodMoM,
		Periods: 1,
	}
}
