// Package solver implements the one-period consumption-saving solvers and
// the backward-induction engine that chains them. Four methods share one
// endogenous-grid core: plain EGM interpolates consumption directly, the
// moderation methods re-express it as a ratio pinned between analytic
// perfect-foresight bounds so that extrapolation far beyond the solved
// grid stays economically sensible.
package solver

import (
	"fmt"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
	"consumption-solver/internal/moderation"
)

// Options control how a one-period solution is constructed.
type Options struct {
	// Cubic selects Hermite interpolation with analytic slopes instead of
	// piecewise-linear interpolation.
	Cubic bool
	// VFunc requests construction of the beginning-of-period value
	// function alongside the consumption rule.
	VFunc bool
	// Extrap attaches the limiting perfect-foresight asymptote to the EGM
	// consumption function, so queries above the grid decay toward it
	// instead of extrapolating the top segment. The moderation methods
	// carry the asymptote through their bounds and ignore this flag.
	Extrap bool
	// Gaps places the synthetic extrapolation nodes of the moderation
	// interpolants. Zero value means moderation.DefaultGaps.
	Gaps moderation.Gaps
	// Risky parameterizes the lognormal return used by the
	// stochastic-return method. Zero value means model.DefaultRisky.
	Risky model.RiskyParams
}

// Solver holds the fixed inputs of a backward-induction step: preferences
// and prices, the discretized income process, and the post-decision asset
// grid. One Solver produces any number of one-period solutions.
type Solver struct {
	params model.Params
	shocks *dist.Shocks
	aXtra  []float64
	opts   Options
	u      model.Utility
}

// New validates the inputs and returns a ready solver. The asset grid is
// the "extra" grid above the borrowing constraint: strictly positive and
// strictly increasing.
func New(params model.Params, shocks *dist.Shocks, aXtra []float64, opts Options) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	if shocks == nil {
		return nil, fmt.Errorf("income process is nil")
	}
	if err := shocks.Validate(); err != nil {
		return nil, fmt.Errorf("income process: %w", err)
	}
	if err := checkAssetGrid(aXtra); err != nil {
		return nil, err
	}
	if opts.Gaps == (moderation.Gaps{}) {
		opts.Gaps = moderation.DefaultGaps()
	}
	if err := opts.Gaps.Validate(); err != nil {
		return nil, err
	}
	if opts.Risky == (model.RiskyParams{}) {
		opts.Risky = model.DefaultRisky()
	}
	if err := opts.Risky.Validate(); err != nil {
		return nil, fmt.Errorf("risky: %w", err)
	}

	grid := make([]float64, len(aXtra))
	copy(grid, aXtra)
	return &Solver{
		params: params,
		shocks: shocks,
		aXtra:  grid,
		opts:   opts,
		u:      params.Utility(),
	}, nil
}

// Solve runs the selected method for one period.
func (s *Solver) Solve(method model.Method, next *model.Solution) (*model.Solution, error) {
	switch method {
	case model.MethodEGM:
		return s.SolveEGM(next)
	case model.MethodMoM:
		return s.SolveMoM(next)
	case model.MethodMoMCusp:
		return s.SolveMoMCusp(next)
	case model.MethodMoMStochR:
		return s.SolveMoMStochasticR(next)
	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}

func checkAssetGrid(aXtra []float64) error {
	if len(aXtra) == 0 {
		return fmt.Errorf("asset grid is empty")
	}
	for i, a := range aXtra {
		if a <= 0 {
			return fmt.Errorf("asset gridpoint %d must be > 0, got %g", i, a)
		}
		if i > 0 && a <= aXtra[i-1] {
			return fmt.Errorf("asset grid must be strictly increasing, gridpoint %d is %g after %g", i, a, aXtra[i-1])
		}
	}
	return nil
}

// prepend returns a new slice with v in front of xs.
func prepend(xs []float64, v float64) []float64 {
	out := make([]float64, 0, len(xs)+1)
	out = append(out, v)
	out = append(out, xs...)
	return out
}
