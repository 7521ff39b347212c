package analysis

import (
	"fmt"
	"math"
	"sort"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
)

// PolicyRow is one gridpoint of tabulated policy output.
// This is the primary artifact for "what the rule does" at a given level
// of market resources.
type PolicyRow struct {
	Index int

	MNrm float64
	CNrm float64
	MPC  float64
	ANrm float64

	// CPes and COpt are the bounding policies at the same point; NaN when
	// the solution carries no bounds (the terminal rule).
	CPes float64
	COpt float64

	// Omega and Chi describe the moderation transform; NaN for rules that
	// are not moderated interpolants.
	Omega float64
	Chi   float64

	// VNrm is NaN unless the solution carries a value function.
	VNrm float64

	EulerError float64
}

// moderated is satisfied by consumption rules built from the logit
// moderation transform.
type moderated interface {
	Omega(m float64) float64
	Chi(m float64) float64
}

// EvalPolicy tabulates a one-period consumption rule on mGrid, measuring
// each point against the successor solution it was solved from. Every
// gridpoint must lie strictly above the solution's MNrmMin.
func EvalPolicy(params model.Params, shocks *dist.Shocks, sol, next *model.Solution, mGrid []float64) ([]PolicyRow, error) {
	if sol == nil || sol.CFunc == nil {
		return nil, fmt.Errorf("solution is nil")
	}
	if next == nil || next.VPFunc == nil {
		return nil, fmt.Errorf("successor solution is nil")
	}
	if shocks == nil {
		return nil, fmt.Errorf("shocks are nil")
	}
	if len(mGrid) == 0 {
		return nil, fmt.Errorf("no gridpoints")
	}

	rows := make([]PolicyRow, 0, len(mGrid))
	for idx, m := range mGrid {
		if m <= sol.MNrmMin {
			return nil, fmt.Errorf("gridpoint %d: m=%g is not above MNrmMin=%g", idx, m, sol.MNrmMin)
		}
		c := sol.CFunc.Eval(m)

		row := PolicyRow{
			Index: idx,
			MNrm:  m,
			CNrm:  c,
			MPC:   sol.CFunc.Derivative(m),
			ANrm:  m - c,
			CPes:  math.NaN(),
			COpt:  math.NaN(),
			Omega: math.NaN(),
			Chi:   math.NaN(),
			VNrm:  math.NaN(),
		}
		if sol.Pessimist != nil && sol.Optimist != nil {
			row.CPes = sol.Pessimist.CFunc.Eval(m)
			row.COpt = sol.Optimist.CFunc.Eval(m)
		}
		if mf, ok := sol.CFunc.(moderated); ok {
			row.Omega = mf.Omega(m)
			row.Chi = mf.Chi(m)
		}
		if sol.VFunc != nil {
			row.VNrm = sol.VFunc.Eval(m)
		}
		row.EulerError = eulerResidual(params, shocks, sol, next, m)

		rows = append(rows, row)
	}
	return rows, nil
}

// PolicyDiagnostics is a solution-level accuracy and sanity summary you
// can use for ranking methods against each other. It combines the scalar
// bounds the solver reported with what the rule actually does on an
// evaluation grid.
type PolicyDiagnostics struct {
	Method model.Method
	Count  int

	MNrmMin float64
	HNrm    float64
	MPCMin  float64
	MPCMax  float64

	MinC float64
	MaxC float64

	MinMPC float64
	MaxMPC float64

	// MinLowerGap and MinUpperGap are the smallest slacks between the
	// rule and its bounding policies over the grid: c - cPes from below,
	// cOpt - c from above. Negative means the rule escaped its bounds.
	MinLowerGap float64
	MinUpperGap float64
	// BoundViolations counts gridpoints where either slack is negative.
	BoundViolations int

	// OmegaNonmonotone counts adjacent gridpoint pairs where the
	// moderation ratio fails to increase. Zero for rules that are not
	// moderated interpolants.
	OmegaNonmonotone int

	MaxEulerError  float64
	MeanEulerError float64
	P95EulerError  float64
}

// Diagnose tabulates the rule on mGrid and aggregates the rows into a
// PolicyDiagnostics.
func Diagnose(params model.Params, shocks *dist.Shocks, sol, next *model.Solution, mGrid []float64) (PolicyDiagnostics, error) {
	rows, err := EvalPolicy(params, shocks, sol, next, mGrid)
	if err != nil {
		return PolicyDiagnostics{}, err
	}

	d := PolicyDiagnostics{
		Method:  sol.Method,
		Count:   len(rows),
		MNrmMin: sol.MNrmMin,
		HNrm:    sol.HNrm,
		MPCMin:  sol.MPCMin,
		MPCMax:  sol.MPCMax,

		MinC:   math.Inf(1),
		MaxC:   math.Inf(-1),
		MinMPC: math.Inf(1),
		MaxMPC: math.Inf(-1),

		MinLowerGap: math.Inf(1),
		MinUpperGap: math.Inf(1),
	}

	errs := make([]float64, 0, len(rows))
	sum := 0.0
	prevOmega := math.Inf(-1)
	for _, r := range rows {
		if r.CNrm < d.MinC {
			d.MinC = r.CNrm
		}
		if r.CNrm > d.MaxC {
			d.MaxC = r.CNrm
		}
		if r.MPC < d.MinMPC {
			d.MinMPC = r.MPC
		}
		if r.MPC > d.MaxMPC {
			d.MaxMPC = r.MPC
		}

		if !math.IsNaN(r.CPes) {
			lower := r.CNrm - r.CPes
			upper := r.COpt - r.CNrm
			if lower < d.MinLowerGap {
				d.MinLowerGap = lower
			}
			if upper < d.MinUpperGap {
				d.MinUpperGap = upper
			}
			if lower < 0 || upper < 0 {
				d.BoundViolations++
			}
		}

		if !math.IsNaN(r.Omega) {
			if r.Omega <= prevOmega {
				d.OmegaNonmonotone++
			}
			prevOmega = r.Omega
		}

		if !math.IsNaN(r.EulerError) {
			errs = append(errs, r.EulerError)
			sum += r.EulerError
			if r.EulerError > d.MaxEulerError {
				d.MaxEulerError = r.EulerError
			}
		}
	}

	if len(errs) > 0 {
		d.MeanEulerError = sum / float64(len(errs))
		sort.Float64s(errs)
		d.P95EulerError = percentileSorted(errs, 0.95)
	}
	return d, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// EvalGrid builds a uniform n-point evaluation grid on [lo, hi].
func EvalGrid(lo, hi float64, n int) []float64 {
	if n <= 0 || hi < lo {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
