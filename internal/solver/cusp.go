package solver

import (
	"fmt"

	"consumption-solver/internal/model"
	"consumption-solver/internal/moderation"
)

// buildCFuncMoMCusp splits the endogenous grid at the cusp point, where
// the tighter upper bound crosses the optimist rule. Below it the
// realist hugs the constraint, so moderating against the tighter bound
// MPCmax*(m - mNrmMin) approximates consumption better than the distant
// optimist; above it the standard moderation applies. Each region gets
// its own interpolant over its own gridpoints. When the cusp falls
// outside the grid there is nothing to split and the standard build is
// used.
func (s *Solver) buildCFuncMoMCusp(g egmGrids, p *Prepared, next *model.Solution, optimist, pessimist, tighter *model.Bound) (model.Func, error) {
	mNrmCusp := moderation.CuspPoint(p.MNrmMin, p.HNrm, p.MPCMin, p.MPCMax)

	split := 0
	for split < len(g.mNrm) && g.mNrm[split] < mNrmCusp {
		split++
	}
	if split == 0 || split == len(g.mNrm) {
		return s.buildCFuncMoM(g, p, next, optimist, pessimist)
	}

	mpc := s.mpcVector(g, p, next)
	hEx := p.HNrm + p.MNrmMin

	lowMu := make([]float64, split)
	for i := 0; i < split; i++ {
		lowMu[i] = (mpc[i] - p.MPCMin) / (p.MPCMax - p.MPCMin)
	}
	low, err := moderation.Build(moderation.Curve{
		MNrm:    g.mNrm[:split],
		Values:  g.cNrm[:split],
		OmegaMu: lowMu,
		MNrmMin: p.MNrmMin,
		Upper:   tighter.CFunc,
		Lower:   pessimist.CFunc,
	}, s.opts.Gaps, s.opts.Cubic)
	if err != nil {
		return nil, fmt.Errorf("low region: %w", err)
	}

	highMu := make([]float64, len(g.mNrm)-split)
	for i := split; i < len(g.mNrm); i++ {
		highMu[i-split] = (g.mNrm[i] - p.MNrmMin) * (mpc[i] - p.MPCMin) / (p.MPCMin * hEx)
	}
	high, err := moderation.Build(moderation.Curve{
		MNrm:    g.mNrm[split:],
		Values:  g.cNrm[split:],
		OmegaMu: highMu,
		MNrmMin: p.MNrmMin,
		Upper:   optimist.CFunc,
		Lower:   pessimist.CFunc,
	}, s.opts.Gaps, s.opts.Cubic)
	if err != nil {
		return nil, fmt.Errorf("high region: %w", err)
	}

	return moderation.NewCuspFunc(mNrmCusp, low, high), nil
}

// SolveMoMCusp is the moderation solver with the two-region cusp
// refinement near the borrowing constraint.
func (s *Solver) SolveMoMCusp(next *model.Solution) (*model.Solution, error) {
	p, err := s.Prepare(next)
	if err != nil {
		return nil, err
	}

	optimist, pessimist, tighter := makeBounds(p, s.params.CRRA)
	g := s.egmStep(s.aXtra, p, next)

	cFunc, err := s.buildCFuncMoMCusp(g, p, next, optimist, pessimist, tighter)
	if err != nil {
		return nil, fmt.Errorf("consumption function: %w", err)
	}

	sol := s.newSolution(cFunc, p, model.MethodMoMCusp, optimist, pessimist, tighter)
	sol.Cusp = &model.CuspInfo{
		MNrmCusp: moderation.CuspPoint(p.MNrmMin, p.HNrm, p.MPCMin, p.MPCMax),
	}
	if s.opts.VFunc {
		vNvrs, vNvrsP, err := s.valueArrays(g, p, next)
		if err != nil {
			return nil, err
		}
		sol.VFunc, err = s.buildVFuncMoM(g, p, vNvrs, vNvrsP, optimist, pessimist)
		if err != nil {
			return nil, fmt.Errorf("value function: %w", err)
		}
	}
	return sol, nil
}
