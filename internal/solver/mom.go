package solver

import (
	"fmt"

	"consumption-solver/internal/model"
	"consumption-solver/internal/moderation"
)

// buildCFuncMoM re-expresses the endogenous-grid consumption points as a
// moderation ratio between the pessimist and optimist rules and
// interpolates its logit over mu = log(m - mNrmMin). The MPC vector is
// always computed: the analytic slope
// dOmega/dMu = mEx*(MPC - MPCmin)/(MPCmin*hEx) feeds the synthetic
// extrapolation nodes even on the linear path.
func (s *Solver) buildCFuncMoM(g egmGrids, p *Prepared, next *model.Solution, optimist, pessimist *model.Bound) (*moderation.ModeratedFunc, error) {
	mpc := s.mpcVector(g, p, next)
	hEx := p.HNrm + p.MNrmMin

	omegaMu := make([]float64, len(g.mNrm))
	for i, m := range g.mNrm {
		omegaMu[i] = (m - p.MNrmMin) * (mpc[i] - p.MPCMin) / (p.MPCMin * hEx)
	}

	return moderation.Build(moderation.Curve{
		MNrm:    g.mNrm,
		Values:  g.cNrm,
		OmegaMu: omegaMu,
		MNrmMin: p.MNrmMin,
		Upper:   optimist.CFunc,
		Lower:   pessimist.CFunc,
	}, s.opts.Gaps, s.opts.Cubic)
}

// SolveMoM is the method-of-moderation solver. The solved consumption
// points always lie strictly between the pessimist and optimist
// perfect-foresight rules; interpolating the logit of their moderation
// ratio over log excess resources keeps every query, however far above
// the grid, strictly between the bounds and the implied precautionary
// saving positive.
func (s *Solver) SolveMoM(next *model.Solution) (*model.Solution, error) {
	sol, _, err := s.solveMoM(next)
	return sol, err
}

// solveMoM also returns the prepared scalars so the stochastic-return
// solver can extend the solution.
func (s *Solver) solveMoM(next *model.Solution) (*model.Solution, *Prepared, error) {
	p, err := s.Prepare(next)
	if err != nil {
		return nil, nil, err
	}

	optimist, pessimist, tighter := makeBounds(p, s.params.CRRA)
	g := s.egmStep(s.aXtra, p, next)

	cFunc, err := s.buildCFuncMoM(g, p, next, optimist, pessimist)
	if err != nil {
		return nil, nil, fmt.Errorf("consumption function: %w", err)
	}

	sol := s.newSolution(cFunc, p, model.MethodMoM, optimist, pessimist, tighter)
	if s.opts.VFunc {
		vNvrs, vNvrsP, err := s.valueArrays(g, p, next)
		if err != nil {
			return nil, nil, err
		}
		sol.VFunc, err = s.buildVFuncMoM(g, p, vNvrs, vNvrsP, optimist, pessimist)
		if err != nil {
			return nil, nil, fmt.Errorf("value function: %w", err)
		}
	}
	return sol, p, nil
}
