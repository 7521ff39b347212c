package model

// Solution is the output of one backward-induction step: the consumption
// rule, the value-side callables, and the scalar bounds that the next step
// consumes. Solutions are immutable once built and safe for concurrent
// reads.
type Solution struct {
	// CFunc maps normalized market resources m to consumption c.
	CFunc Func
	// VFunc is the value function; nil unless value construction was
	// requested.
	VFunc *ValueCRRA
	// VPFunc is marginal value u'(c(m)).
	VPFunc *MargValueCRRA
	// VPPFunc is marginal marginal value u''(c(m))*c'(m). Always built:
	// every solver here carries a differentiable consumption rule, and the
	// next step's MPC vector needs it.
	VPPFunc *MargMargValueCRRA

	// MNrmMin is the lower bound of feasible m (binding constraint).
	MNrmMin float64
	// HNrm is expected discounted human wealth.
	HNrm float64
	// MPCMin is the limiting marginal propensity to consume as m grows.
	MPCMin float64
	// MPCMax is the limiting MPC as m approaches MNrmMin.
	MPCMax float64

	// Method tags which solver produced this solution.
	Method Method

	// Optimist, Pessimist and TighterUpperBound are the perfect-foresight
	// bounding policies. Set by every solver; nil on the terminal
	// solution.
	Optimist          *Bound
	Pessimist         *Bound
	TighterUpperBound *Bound

	// Cusp is set by the cusp solver, whether or not the split applied.
	Cusp *CuspInfo
	// StochasticR is set by the stochastic-return solver.
	StochasticR *StochasticRInfo
}

// CuspInfo records where the tighter upper bound crosses the optimist's
// consumption level, splitting the moderation domain.
type CuspInfo struct {
	MNrmCusp float64
}

// StochasticRInfo carries the risky-return tightening of the MPC lower
// bound. The solve itself uses the deterministic quantities; these fields
// are informational, with bounds rebuilt from the stochastic MPC.
type StochasticRInfo struct {
	MPCMinStochastic    float64
	MPCMinDeterministic float64
	Optimist            *Bound
	Pessimist           *Bound
}

// TerminalSolution is the last-period problem: consume everything.
// c(m) = m, v(m) = u(m), with unit MPC everywhere.
func TerminalSolution(crra float64) *Solution {
	cFunc := LinearConsumption{Intercept: 0, Slope: 1}
	return &Solution{
		CFunc:   cFunc,
		VFunc:   NewValueCRRA(cFunc, crra),
		VPFunc:  NewMargValueCRRA(cFunc, crra),
		VPPFunc: NewMargMargValueCRRA(cFunc, crra),
		MNrmMin: 0,
		HNrm:    0,
		MPCMin:  1,
		MPCMax:  1,
		Method:  MethodTerminal,
	}
}
