package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"consumption-solver/internal/model"
	"consumption-solver/internal/solver"
)

func TestEulerResidualsSmallOnInterior(t *testing.T) {
	sol, next, params, shocks := solveOnce(t, model.MethodMoM, solver.Options{})

	res, err := EulerResiduals(params, shocks, sol, next, EvalGrid(1, 40, 120))
	require.NoError(t, err)
	require.Len(t, res, 120)

	maxErr := 0.0
	for _, e := range res {
		require.GreaterOrEqual(t, e, 0.0)
		if e > maxErr {
			maxErr = e
		}
	}
	require.Greater(t, maxErr, 0.0)
	require.Less(t, maxErr, 1e-3)
}

func TestEulerResidualsZeroWhereConstraintBinds(t *testing.T) {
	sol, next, params, shocks := solveOnce(t, model.MethodEGM, solver.Options{})

	// Below the bottom endogenous gridpoint the rule consumes everything,
	// exactly.
	res, err := EulerResiduals(params, shocks, sol, next, []float64{0.1, 0.5})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, res)
}

func TestEulerResidualsFlagInfeasibleExtrapolation(t *testing.T) {
	sol, next, params, shocks := solveOnce(t, model.MethodMoM, solver.Options{})

	// Below the solved grid the moderated rule crosses the 45-degree
	// line; the residual reports the overshoot past feasible resources.
	res, err := EulerResiduals(params, shocks, sol, next, []float64{0.5})
	require.NoError(t, err)
	require.InEpsilon(t, 0.213898098648, res[0], 1e-9)
}

func TestEulerResidualsValidate(t *testing.T) {
	sol, next, params, shocks := solveOnce(t, model.MethodMoM, solver.Options{})

	_, err := EulerResiduals(params, shocks, nil, next, []float64{1})
	require.ErrorContains(t, err, "solution is nil")

	_, err = EulerResiduals(params, shocks, sol, nil, []float64{1})
	require.ErrorContains(t, err, "successor")

	_, err = EulerResiduals(params, nil, sol, next, []float64{1})
	require.ErrorContains(t, err, "shocks")

	_, err = EulerResiduals(params, shocks, sol, next, nil)
	require.ErrorContains(t, err, "no gridpoints")

	_, err = EulerResiduals(params, shocks, sol, next, []float64{-1})
	require.ErrorContains(t, err, "not above")
}
