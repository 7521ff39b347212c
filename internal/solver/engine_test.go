package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"consumption-solver/internal/model"
)

func TestNewEngineValidation(t *testing.T) {
	s := newBaseline(t, Options{})

	_, err := NewEngine(nil, model.MethodMoM)
	require.ErrorContains(t, err, "nil")

	_, err = NewEngine(s, model.Method("bogus"))
	require.ErrorContains(t, err, "unknown method")

	// The terminal tag names a constructed solution, never a solver.
	_, err = NewEngine(s, model.MethodTerminal)
	require.Error(t, err)
}

func TestEngineRunBackwardInduction(t *testing.T) {
	s := newBaseline(t, Options{})
	eng, err := NewEngine(s, model.MethodMoM)
	require.NoError(t, err)

	_, err = eng.Run(0)
	require.ErrorContains(t, err, "periods")

	sols, err := eng.Run(2)
	require.NoError(t, err)
	require.Len(t, sols, 3)
	require.Equal(t, model.MethodTerminal, sols[2].Method)
	require.Equal(t, model.MethodMoM, sols[1].Method)
	require.Equal(t, model.MethodMoM, sols[0].Method)

	// One period before the end matches a single solve against the
	// terminal rule.
	one, err := s.SolveMoM(terminal())
	require.NoError(t, err)
	for _, m := range []float64{0.5, 1, 5, 20} {
		require.Equal(t, one.CFunc.Eval(m), sols[1].CFunc.Eval(m), "m=%g", m)
	}

	// Horizon scalars accumulate backward: human wealth grows by another
	// year of income, the MPC floor falls.
	require.InEpsilon(t, 1.942124611179, sols[0].HNrm, 1e-9)
	require.InEpsilon(t, 0.348539329773, sols[0].MPCMin, 1e-9)
	require.Equal(t, 1.0, sols[0].MPCMax)
	require.Less(t, sols[0].MPCMin, sols[1].MPCMin)
	require.Greater(t, sols[0].HNrm, sols[1].HNrm)

	cases := []struct{ m, c float64 }{
		{0.5, 0.668692064548},
		{1, 0.935563417881},
		{2, 1.326930419245},
		{5, 2.398554048769},
		{10, 4.151008596718},
	}
	for _, tc := range cases {
		require.InEpsilon(t, tc.c, sols[0].CFunc.Eval(tc.m), 1e-8, "c at m=%g", tc.m)
	}

	// With another period to smooth over, consumption out of large
	// resources falls.
	require.Less(t, sols[0].CFunc.Eval(10), sols[1].CFunc.Eval(10))
}

func TestSolveScenarioBaseline(t *testing.T) {
	sols, err := SolveScenario(model.DefaultScenario())
	require.NoError(t, err)
	require.Len(t, sols, 2)
	require.Equal(t, model.MethodMoM, sols[0].Method)

	c := sols[0].CFunc
	cases := []struct{ m, want float64 }{
		{0.1, 0.173746133322},
		{0.5, 0.606949049324},
		{1, 0.935683968864},
		{2, 1.488449740035},
		{5, 3.044443296705},
		{10, 5.607853593871},
		{50, 26.066086637804},
	}
	for _, tc := range cases {
		require.InEpsilon(t, tc.want, c.Eval(tc.m), 1e-9, "m=%g", tc.m)
	}
}

func TestSolveScenarioAllMethods(t *testing.T) {
	for _, method := range model.Methods() {
		sc := model.DefaultScenario()
		sc.Method = method
		sc.Cubic = true
		sc.VFunc = true
		sols, err := SolveScenario(sc)
		require.NoError(t, err, "method %s", method)
		require.Equal(t, method, sols[0].Method)
		require.NotNil(t, sols[0].VFunc, "method %s", method)
		// Deep inside the grid the methods agree to interpolation error.
		require.InDelta(t, 3.0444, sols[0].CFunc.Eval(5), 1e-3, "method %s", method)
	}
}

func TestSolveScenarioRejectsInvalid(t *testing.T) {
	sc := model.DefaultScenario()
	sc.Periods = 0
	_, err := SolveScenario(sc)
	require.ErrorContains(t, err, "Periods")

	sc = model.DefaultScenario()
	sc.Method = "bogus"
	_, err = SolveScenario(sc)
	require.ErrorContains(t, err, "unknown method")

	sc = model.DefaultScenario()
	sc.Grid.Count = 1
	_, err = SolveScenario(sc)
	require.ErrorContains(t, err, "Count")
}
