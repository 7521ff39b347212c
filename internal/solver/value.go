package solver

import (
	"fmt"
	"math"

	"consumption-solver/internal/interp"
	"consumption-solver/internal/model"
	"consumption-solver/internal/moderation"
)

// valueArrays computes the beginning-of-period value function in
// pseudo-inverse space on the endogenous grid.
//
// The end-of-period value v(a) = betaEff*Gamma^(1-rho)*E[psi^(1-rho)*v(m')]
// is interpolated through vNvrs = u^-1(v), which is nearly linear where v
// itself has extreme curvature, with the boundary node (BoroCnstNat, 0)
// prepended. The Bellman sum v(m) = u(c) + v(a) is then transformed the
// same way. The slope vector is always computed: the moderation value
// build needs it even on the linear path.
func (s *Solver) valueArrays(g egmGrids, p *Prepared, next *model.Solution) (vNvrs, vNvrsP []float64, err error) {
	rho := s.params.CRRA
	rFree := s.params.Rfree
	gro := s.params.PermGroFac

	vFac := p.DiscFacEff * math.Pow(gro, 1-rho)
	endOfPrdV := s.shocks.ExpectedOver(g.aNrm, func(perm, tran, a float64) float64 {
		mNext := rFree/(gro*perm)*a + tran
		return math.Pow(perm, 1-rho) * next.VFunc.Eval(mNext)
	})
	for i := range endOfPrdV {
		endOfPrdV[i] *= vFac
	}

	endNvrs := make([]float64, len(endOfPrdV))
	for i, v := range endOfPrdV {
		endNvrs[i] = s.u.UInv(v)
	}
	aAug := prepend(g.aNrm, p.BoroCnstNat)
	endNvrsAug := prepend(endNvrs, 0)

	var endNvrsFn model.Func
	if s.opts.Cubic {
		endNvrsP := make([]float64, len(endOfPrdV))
		for i := range endNvrsP {
			endNvrsP[i] = g.endOfPrdVP[i] * s.u.UInvP(endOfPrdV[i])
		}
		// vNvrsPP is approximately zero at the asset minimum, so the
		// bottom slope is replicated rather than extrapolated.
		endNvrsFn, err = interp.NewCubic(aAug, endNvrsAug, prepend(endNvrsP, endNvrsP[0]))
	} else {
		endNvrsFn, err = interp.NewLinear(aAug, endNvrsAug)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("end-of-period value: %w", err)
	}
	endOfPrdVFunc := model.NewValueCRRA(endNvrsFn, rho)

	vNvrs = make([]float64, len(g.aNrm))
	vNvrsP = make([]float64, len(g.aNrm))
	for i := range g.aNrm {
		v := s.u.U(g.cNrm[i]) + endOfPrdVFunc.Eval(g.aNrm[i])
		vP := s.u.UP(g.cNrm[i])
		vNvrs[i] = s.u.UInv(v)
		vNvrsP[i] = vP * s.u.UInvP(v)
	}
	return vNvrs, vNvrsP, nil
}

// mpcNvrs maps an MPC bound into pseudo-inverse value space.
func mpcNvrs(mpc, rho float64) float64 {
	return math.Pow(mpc, -rho/(1-rho))
}

// buildVFuncEGM interpolates vNvrs directly over the endogenous grid with
// the boundary node (mNrmMin, 0), the cubic slope vector led by the
// MPCmax pseudo-inverse slope, and the limiting optimist value line
// always attached.
func (s *Solver) buildVFuncEGM(g egmGrids, p *Prepared, vNvrs, vNvrsP []float64) (*model.ValueCRRA, error) {
	rho := s.params.CRRA
	mAug := prepend(g.mNrm, p.MNrmMin)
	nvrsAug := prepend(vNvrs, 0)

	minNvrs := mpcNvrs(p.MPCMin, rho)
	intercept := minNvrs * p.HNrm

	var fn model.Func
	var err error
	if s.opts.Cubic {
		dAug := prepend(vNvrsP, mpcNvrs(p.MPCMax, rho))
		fn, err = interp.NewCubicWithLimit(mAug, nvrsAug, dAug, intercept, minNvrs)
	} else {
		fn, err = interp.NewLinearWithLimit(mAug, nvrsAug, intercept, minNvrs)
	}
	if err != nil {
		return nil, err
	}
	return model.NewValueCRRA(fn, rho), nil
}

// buildVFuncMoM moderates vNvrs between the pessimist and optimist
// pseudo-inverse value lines, reusing the consumption-side chi machinery
// with the value-side analytic slope.
func (s *Solver) buildVFuncMoM(g egmGrids, p *Prepared, vNvrs, vNvrsP []float64, optimist, pessimist *model.Bound) (*model.ValueCRRA, error) {
	rho := s.params.CRRA
	minNvrs := mpcNvrs(p.MPCMin, rho)
	hEx := p.HNrm + p.MNrmMin

	omegaMu := make([]float64, len(g.mNrm))
	for i, m := range g.mNrm {
		omegaMu[i] = (m - p.MNrmMin) * (vNvrsP[i] - minNvrs) / (hEx * minNvrs)
	}

	mf, err := moderation.Build(moderation.Curve{
		MNrm:    g.mNrm,
		Values:  vNvrs,
		OmegaMu: omegaMu,
		MNrmMin: p.MNrmMin,
		Upper:   optimist.VFunc.Nvrs,
		Lower:   pessimist.VFunc.Nvrs,
	}, s.opts.Gaps, s.opts.Cubic)
	if err != nil {
		return nil, err
	}
	return model.NewValueCRRA(mf, rho), nil
}
