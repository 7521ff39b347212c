package solver

import (
	"fmt"
	"math"

	"consumption-solver/internal/interp"
	"consumption-solver/internal/model"
)

// egmGrids holds the arrays produced by one endogenous-grid step, all
// indexed by the post-decision asset gridpoint.
type egmGrids struct {
	aNrm       []float64
	cNrm       []float64
	mNrm       []float64
	endOfPrdVP []float64
}

// egmStep runs the endogenous grid method on aXtra + mNrmMin: compute
// end-of-period marginal value, invert the Euler equation for consumption,
// and back out the market-resources grid m = c + a.
func (s *Solver) egmStep(aXtra []float64, p *Prepared, next *model.Solution) egmGrids {
	rho := s.params.CRRA
	rFree := s.params.Rfree
	gro := s.params.PermGroFac

	aNrm := make([]float64, len(aXtra))
	for i, a := range aXtra {
		aNrm[i] = a + p.MNrmMin
	}

	vPFac := p.DiscFacEff * rFree * math.Pow(gro, -rho)
	endOfPrdVP := s.shocks.ExpectedOver(aNrm, func(perm, tran, a float64) float64 {
		mNext := rFree/(gro*perm)*a + tran
		return math.Pow(perm, -rho) * next.VPFunc.Eval(mNext)
	})
	for i := range endOfPrdVP {
		endOfPrdVP[i] *= vPFac
	}

	cNrm := make([]float64, len(aNrm))
	mNrm := make([]float64, len(aNrm))
	for i := range aNrm {
		cNrm[i] = s.u.UPInv(endOfPrdVP[i])
		mNrm[i] = cNrm[i] + aNrm[i]
	}
	return egmGrids{aNrm: aNrm, cNrm: cNrm, mNrm: mNrm, endOfPrdVP: endOfPrdVP}
}

// mpcVector computes the marginal propensity to consume at each
// gridpoint from end-of-period marginal marginal value:
// dc/da = v''(a)/u''(c), MPC = (dc/da)/(dc/da + 1).
func (s *Solver) mpcVector(g egmGrids, p *Prepared, next *model.Solution) []float64 {
	rho := s.params.CRRA
	rFree := s.params.Rfree
	gro := s.params.PermGroFac

	vPPFac := p.DiscFacEff * rFree * rFree * math.Pow(gro, -rho-1)
	endOfPrdVPP := s.shocks.ExpectedOver(g.aNrm, func(perm, tran, a float64) float64 {
		mNext := rFree/(gro*perm)*a + tran
		return math.Pow(perm, -rho-1) * next.VPPFunc.Eval(mNext)
	})

	mpc := make([]float64, len(g.aNrm))
	for i := range mpc {
		dcda := vPPFac * endOfPrdVPP[i] / s.u.UPP(g.cNrm[i])
		mpc[i] = dcda / (dcda + 1)
	}
	return mpc
}

// buildCFuncEGM interpolates consumption directly over the endogenous
// grid, with the boundary node (mNrmMin, 0) prepended. With Extrap the
// interpolant decays toward the optimist asymptote above the grid.
func (s *Solver) buildCFuncEGM(g egmGrids, p *Prepared, next *model.Solution) (model.Func, error) {
	mAug := prepend(g.mNrm, p.MNrmMin)
	cAug := prepend(g.cNrm, 0)

	if s.opts.Cubic {
		mpcAug := prepend(s.mpcVector(g, p, next), p.MPCMax)
		if s.opts.Extrap {
			return interp.NewCubicWithLimit(mAug, cAug, mpcAug, p.MPCMin*p.HNrm, p.MPCMin)
		}
		return interp.NewCubic(mAug, cAug, mpcAug)
	}
	if s.opts.Extrap {
		return interp.NewLinearWithLimit(mAug, cAug, p.MPCMin*p.HNrm, p.MPCMin)
	}
	return interp.NewLinear(mAug, cAug)
}

// SolveEGM is the baseline endogenous-grid solver. It is the benchmark
// the moderation methods improve on: interpolating consumption directly
// extrapolates poorly above the grid, predicting negative precautionary
// saving for large m unless Extrap is set.
func (s *Solver) SolveEGM(next *model.Solution) (*model.Solution, error) {
	p, err := s.Prepare(next)
	if err != nil {
		return nil, err
	}

	// With a binding artificial constraint the natural constraint is not
	// a gridpoint, so a = 0 must be added to resolve the kink.
	aXtra := s.aXtra
	if p.BoroCnstNat != p.MNrmMin {
		aXtra = prepend(aXtra, 0)
	}
	g := s.egmStep(aXtra, p, next)

	cFunc, err := s.buildCFuncEGM(g, p, next)
	if err != nil {
		return nil, fmt.Errorf("consumption function: %w", err)
	}

	optimist, pessimist, tighter := makeBounds(p, s.params.CRRA)
	sol := s.newSolution(cFunc, p, model.MethodEGM, optimist, pessimist, tighter)
	if s.opts.VFunc {
		vNvrs, vNvrsP, err := s.valueArrays(g, p, next)
		if err != nil {
			return nil, err
		}
		sol.VFunc, err = s.buildVFuncEGM(g, p, vNvrs, vNvrsP)
		if err != nil {
			return nil, fmt.Errorf("value function: %w", err)
		}
	}
	return sol, nil
}

// newSolution assembles the solution fields every method shares: the
// envelope-condition marginal value wrappers, the prepared scalars and
// the three bounding policies.
func (s *Solver) newSolution(cFunc model.Func, p *Prepared, method model.Method, optimist, pessimist, tighter *model.Bound) *model.Solution {
	return &model.Solution{
		CFunc:             cFunc,
		VPFunc:            model.NewMargValueCRRA(cFunc, s.params.CRRA),
		VPPFunc:           model.NewMargMargValueCRRA(cFunc, s.params.CRRA),
		MNrmMin:           p.MNrmMin,
		HNrm:              p.HNrm,
		MPCMin:            p.MPCMin,
		MPCMax:            p.MPCMax,
		Method:            method,
		Optimist:          optimist,
		Pessimist:         pessimist,
		TighterUpperBound: tighter,
	}
}
