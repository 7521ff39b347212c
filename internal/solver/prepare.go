package solver

import (
	"fmt"
	"math"

	"consumption-solver/internal/model"
)

// Prepared collects the scalar quantities every one-period solver starts
// from: the effective discount factor, human wealth, the borrowing
// constraints, the patience factor and the MPC bounds implied by next
// period's solution.
type Prepared struct {
	DiscFacEff  float64
	HNrm        float64
	BoroCnstNat float64
	MNrmMin     float64
	PatFac      float64
	MPCMin      float64
	MPCMax      float64
	MPCMaxUnc   float64
	WorstIncPrb float64
}

// Prepare computes the shared scalars from next period's solution.
//
// Notes:
//   - Human wealth follows the annuity recursion hNrm = (Gamma/R)*(E[psi*theta] + hNrm').
//   - The natural constraint uses the exact worst shock atoms, not an
//     infimum approximation.
//   - When the artificial limit binds strictly, the consumer must consume
//     everything at the constraint, so MPCmax collapses to 1.
func (s *Solver) Prepare(next *model.Solution) (*Prepared, error) {
	if err := s.checkNext(next); err != nil {
		return nil, err
	}

	p := s.params
	rho := p.CRRA
	discFacEff := p.DiscFacEff()

	exIncNext := s.shocks.Expected(func(perm, tran float64) float64 {
		return perm * tran
	})
	hNrm := p.PermGroFac / p.Rfree * (exIncNext + next.HNrm)

	boroCnstNat := (next.MNrmMin - s.shocks.MinTran()) * (p.PermGroFac * s.shocks.MinPerm()) / p.Rfree
	mNrmMin := boroCnstNat
	if p.BoroCnstArt != nil && *p.BoroCnstArt > mNrmMin {
		mNrmMin = *p.BoroCnstArt
	}

	patFac := math.Pow(p.Rfree*discFacEff, 1/rho) / p.Rfree
	if patFac <= 0 || patFac >= 1 {
		return nil, fmt.Errorf("patience factor (Rfree*DiscFacEff)^(1/CRRA)/Rfree = %g outside (0, 1)", patFac)
	}
	mpcMin := 1 / (1 + patFac/next.MPCMin)

	worstIncPrb := s.shocks.WorstIncomeProb()
	mpcMaxUnc := 1 / (1 + math.Pow(worstIncPrb, 1/rho)*patFac/next.MPCMax)
	mpcMax := mpcMaxUnc
	if boroCnstNat < mNrmMin {
		mpcMax = 1.0
	}

	return &Prepared{
		DiscFacEff:  discFacEff,
		HNrm:        hNrm,
		BoroCnstNat: boroCnstNat,
		MNrmMin:     mNrmMin,
		PatFac:      patFac,
		MPCMin:      mpcMin,
		MPCMax:      mpcMax,
		MPCMaxUnc:   mpcMaxUnc,
		WorstIncPrb: worstIncPrb,
	}, nil
}

// checkNext verifies that next period's solution carries the callables
// this step will evaluate.
func (s *Solver) checkNext(next *model.Solution) error {
	if next == nil {
		return fmt.Errorf("next period solution is nil")
	}
	if next.VPFunc == nil {
		return fmt.Errorf("next period solution has no marginal value function")
	}
	if next.VPPFunc == nil {
		return fmt.Errorf("next period solution has no marginal marginal value function")
	}
	if next.MPCMin <= 0 || next.MPCMax <= 0 {
		return fmt.Errorf("next period MPC bounds must be > 0, got min=%g max=%g", next.MPCMin, next.MPCMax)
	}
	if s.opts.VFunc && next.VFunc == nil {
		return fmt.Errorf("value function requested but next period solution has none")
	}
	return nil
}

// makeBounds builds the three perfect-foresight bounding policies. The
// optimist treats all future income as certain, the pessimist discards it
// entirely, and the tighter bound replaces the pessimist's slope with
// MPCmax to bind near the constraint.
func makeBounds(p *Prepared, crra float64) (optimist, pessimist, tighter *model.Bound) {
	optimist = model.NewBound(p.HNrm, p.MPCMin, crra)
	pessimist = model.NewBound(-p.MNrmMin, p.MPCMin, crra)
	tighter = model.NewBound(-p.MNrmMin, p.MPCMax, crra)
	return optimist, pessimist, tighter
}
