package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"consumption-solver/internal/model"
)

func TestStochasticMPC(t *testing.T) {
	got, err := StochasticMPC(0.96, 2, model.RiskyParams{Avg: 1.08, Std: 0.20})
	require.NoError(t, err)
	require.InEpsilon(t, 0.041161094373, got, 1e-9)

	// Zero spread reduces to the perfect-foresight closed form
	// 1 - (beta*R^(1-rho))^(1/rho).
	got, err = StochasticMPC(0.96, 2, model.RiskyParams{Avg: 1.03, Std: 0})
	require.NoError(t, err)
	require.InEpsilon(t, 1-math.Sqrt(0.96/1.03), got, 1e-12)
	require.InEpsilon(t, 0.034578415949, got, 1e-9)
}

func TestStochasticMPCRiskLowersMPC(t *testing.T) {
	riskless, err := StochasticMPC(0.96, 2, model.RiskyParams{Avg: 1.08, Std: 0})
	require.NoError(t, err)
	require.InEpsilon(t, 0.057190958418, riskless, 1e-9)

	prev := riskless
	for _, std := range []float64{0.1, 0.2, 0.3} {
		mpc, err := StochasticMPC(0.96, 2, model.RiskyParams{Avg: 1.08, Std: std})
		require.NoError(t, err)
		require.Less(t, mpc, prev, "std=%g", std)
		require.Greater(t, mpc, 0.0, "std=%g", std)
		prev = mpc
	}
}

func TestStochasticMPCDomainErrors(t *testing.T) {
	_, err := StochasticMPC(0.96, 2, model.RiskyParams{Avg: 0, Std: 0.2})
	require.ErrorContains(t, err, "Avg")

	_, err = StochasticMPC(0.96, 2, model.RiskyParams{Avg: 1.08, Std: -0.1})
	require.ErrorContains(t, err, "Std")

	// Patience so extreme that no finite consumption plan exists.
	_, err = StochasticMPC(1.2, 2, model.RiskyParams{Avg: 1.08, Std: 0.2})
	require.ErrorContains(t, err, "outside (0, 1)")
}

func TestSolveMoMStochasticR(t *testing.T) {
	s := newBaseline(t, Options{})
	next := terminal()
	sol, err := s.SolveMoMStochasticR(next)
	require.NoError(t, err)
	require.Equal(t, model.MethodMoMStochR, sol.Method)
	require.NotNil(t, sol.StochasticR)

	info := sol.StochasticR
	require.InEpsilon(t, 0.041161094373, info.MPCMinStochastic, 1e-9)
	require.InEpsilon(t, 0.511321002805, info.MPCMinDeterministic, 1e-9)
	require.Less(t, info.MPCMinStochastic, info.MPCMinDeterministic)

	// The annotated bounds are rebuilt on the stochastic slope with the
	// same intercepts.
	require.Equal(t, info.MPCMinStochastic, info.Optimist.CFunc.Slope)
	require.Equal(t, info.MPCMinStochastic, info.Pessimist.CFunc.Slope)
	require.InEpsilon(t, sol.HNrm, info.Optimist.CFunc.Intercept, 1e-12)
	require.Equal(t, 0.0, info.Pessimist.CFunc.Intercept)

	// The consumption rule itself is the standard moderation solve.
	mom, err := s.SolveMoM(next)
	require.NoError(t, err)
	for _, m := range []float64{0.5, 1, 2, 10, 50} {
		require.Equal(t, mom.CFunc.Eval(m), sol.CFunc.Eval(m), "m=%g", m)
	}
}

func TestSolveMoMStochasticRRejectsBadRisky(t *testing.T) {
	s := newBaseline(t, Options{Risky: model.RiskyParams{Avg: 0.5, Std: 0}})
	_, err := s.SolveMoMStochasticR(terminal())
	require.ErrorContains(t, err, "outside (0, 1)")
}
