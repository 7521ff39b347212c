package analysis

import (
	"fmt"
	"math"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
)

// EulerResiduals measures the accuracy of a consumption rule in
// consumption units: at each gridpoint, the relative gap between c(m) and
// the consumption implied by equating u'(c) with the discounted expected
// marginal value of the assets the rule leaves behind. Where the rule
// exhausts feasible resources the first-order condition holds as an
// inequality, so only consumption past the feasible cap counts against
// it there.
func EulerResiduals(params model.Params, shocks *dist.Shocks, sol, next *model.Solution, mGrid []float64) ([]float64, error) {
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

	out := make([]float64, len(mGrid))
	for i, m := range mGrid {
		if m <= sol.MNrmMin {
			return nil, fmt.Errorf("gridpoint %d: m=%g is not above MNrmMin=%g", i, m, sol.MNrmMin)
		}
		out[i] = eulerResidual(params, shocks, sol, next, m)
	}
	return out, nil
}

func eulerResidual(params model.Params, shocks *dist.Shocks, sol, next *model.Solution, m float64) float64 {
	rho := params.CRRA
	c := sol.CFunc.Eval(m)

	cCap := m - sol.MNrmMin
	if cCap <= 0 {
		return math.NaN()
	}
	a := m - c
	if a <= sol.MNrmMin+1e-12 {
		// At (or past) the feasible cap only overconsumption violates
		// the first-order condition.
		return math.Max(0, (c-cCap)/cCap)
	}

	fac := params.DiscFacEff() * params.Rfree * math.Pow(params.PermGroFac, -rho)
	rhs := fac * shocks.Expected(func(perm, tran float64) float64 {
		mNext := params.Rfree/(params.PermGroFac*perm)*a + tran
		return math.Pow(perm, -rho) * next.VPFunc.Eval(mNext)
	})
	cImplied := params.Utility().UPInv(rhs)
	return math.Abs(c-cImplied) / c
}
