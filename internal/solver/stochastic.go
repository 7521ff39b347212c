package solver

import (
	"fmt"
	"math"

	"consumption-solver/internal/model"
)

// StochasticMPC is the Merton-Samuelson limiting MPC under i.i.d.
// lognormal gross returns: 1 - (beta*E[R^(1-rho)])^(1/rho), with
// E[R^(1-rho)] = Avg^(1-rho)*exp((1-rho)*(-rho)*sigma^2/2) and
// sigma^2 = log(1 + (Std/Avg)^2) the log-return variance. Return risk
// lowers the limiting MPC below its deterministic counterpart: the
// consumer saves more against bad return draws.
//
// beta*E[R^(1-rho)] must lie in (0, 1) for the infinite-horizon problem
// to have a solution; anything else is a domain error.
func StochasticMPC(discFac, crra float64, risky model.RiskyParams) (float64, error) {
	if err := risky.Validate(); err != nil {
		return 0, err
	}
	sigmaSq := math.Log1p((risky.Std / risky.Avg) * (risky.Std / risky.Avg))
	exRPow := math.Pow(risky.Avg, 1-crra) * math.Exp((1-crra)*(-crra)*sigmaSq/2)
	inner := discFac * exRPow
	if inner <= 0 || inner >= 1 {
		return 0, fmt.Errorf("DiscFac*E[R^(1-CRRA)] = %g outside (0, 1); no finite consumption plan exists", inner)
	}
	return 1 - math.Pow(inner, 1/crra), nil
}

// SolveMoMStochasticR runs the standard moderation solve and annotates
// the solution with the stochastic-return MPC bound and the bound pair
// rebuilt from it. The solve itself uses the deterministic quantities;
// integrating the EGM step over return draws is a separate problem.
func (s *Solver) SolveMoMStochasticR(next *model.Solution) (*model.Solution, error) {
	mpcStoch, err := StochasticMPC(s.params.DiscFac, s.params.CRRA, s.opts.Risky)
	if err != nil {
		return nil, err
	}

	sol, p, err := s.solveMoM(next)
	if err != nil {
		return nil, err
	}
	sol.Method = model.MethodMoMStochR
	sol.StochasticR = &model.StochasticRInfo{
		MPCMinStochastic:    mpcStoch,
		MPCMinDeterministic: p.MPCMin,
		Optimist:            model.NewBound(p.HNrm, mpcStoch, s.params.CRRA),
		Pessimist:           model.NewBound(-p.MNrmMin, mpcStoch, s.params.CRRA),
	}
	return sol, nil
}
