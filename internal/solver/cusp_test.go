package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
	"consumption-solver/internal/moderation"
)

func TestSolveMoMCuspBaseline(t *testing.T) {
	s := newBaseline(t, Options{})
	sol, err := s.SolveMoMCusp(terminal())
	require.NoError(t, err)
	require.Equal(t, model.MethodMoMCusp, sol.Method)
	require.NotNil(t, sol.Cusp)
	require.InEpsilon(t, 1.026015937908, sol.Cusp.MNrmCusp, 1e-9)

	cf, ok := sol.CFunc.(*moderation.CuspFunc)
	require.True(t, ok)
	require.InEpsilon(t, 1.026015937908, cf.MNrmCusp(), 1e-9)

	// Low region, moderated against the tighter MPCmax bound.
	require.InEpsilon(t, 0.255660501402, sol.CFunc.Eval(0.5), 1e-9)
	require.InEpsilon(t, 0.511321002805, sol.CFunc.Derivative(0.5), 1e-9)
	require.InEpsilon(t, 0.876421017413, sol.CFunc.Eval(0.9), 1e-9)
	require.InEpsilon(t, 0.674009678612, sol.CFunc.Derivative(0.9), 1e-9)
	require.InEpsilon(t, 0.938154488700, sol.CFunc.Eval(1.0), 1e-9)
	require.InEpsilon(t, 1.021274235639, sol.CFunc.Derivative(1.0), 1e-9)
	require.InEpsilon(t, 0.958577471075, sol.CFunc.Eval(1.02), 1e-9)

	// High region, identical to the standard moderation rule.
	require.InEpsilon(t, 0.953441222684, sol.CFunc.Eval(1.03), 1e-9)
	require.InEpsilon(t, 0.589965303483, sol.CFunc.Derivative(1.03), 1e-9)
	require.InEpsilon(t, 1.488449740035, sol.CFunc.Eval(2), 1e-9)
	require.InEpsilon(t, 3.044443296705, sol.CFunc.Eval(5), 1e-9)
	require.InEpsilon(t, 26.066086637804, sol.CFunc.Eval(50), 1e-9)
}

func TestCuspSplitsBaselineGridAtFourthPoint(t *testing.T) {
	s := newBaseline(t, Options{})
	next := terminal()
	p, err := s.Prepare(next)
	require.NoError(t, err)
	g := s.egmStep(s.aXtra, p, next)

	cusp := moderation.CuspPoint(p.MNrmMin, p.HNrm, p.MPCMin, p.MPCMax)
	require.Less(t, g.mNrm[3], cusp)
	require.Greater(t, g.mNrm[4], cusp)
}

func TestCuspHighRegionMatchesMoM(t *testing.T) {
	s := newBaseline(t, Options{})
	next := terminal()
	cusp, err := s.SolveMoMCusp(next)
	require.NoError(t, err)
	mom, err := s.SolveMoM(next)
	require.NoError(t, err)

	// From the first high-region gridpoint up, the high region moderates
	// the same consumption points against the same optimist, so the two
	// rules coincide segment for segment.
	for _, m := range []float64{1.5, 2, 5, 10, 50} {
		require.Equal(t, mom.CFunc.Eval(m), cusp.CFunc.Eval(m), "m=%g", m)
	}

	// Below the cusp the tighter bound binds and the rules differ.
	require.NotEqual(t, mom.CFunc.Eval(0.9), cusp.CFunc.Eval(0.9))
}

func TestSolveMoMCuspFallsBackWhenCuspBelowGrid(t *testing.T) {
	sc := model.DefaultScenario()
	shocks, err := dist.NewIncomeProcess(sc.Income)
	require.NoError(t, err)
	aXtra, err := ExpMultGrid(model.GridParams{Min: 5, Max: 20, Count: 16, NestFac: 3})
	require.NoError(t, err)
	s, err := New(sc.Params, shocks, aXtra, Options{})
	require.NoError(t, err)

	next := terminal()
	cusp, err := s.SolveMoMCusp(next)
	require.NoError(t, err)
	mom, err := s.SolveMoM(next)
	require.NoError(t, err)

	// Every endogenous gridpoint sits above the cusp, so there is no low
	// region to split off and the standard build is used unchanged.
	_, isCusp := cusp.CFunc.(*moderation.CuspFunc)
	require.False(t, isCusp)
	require.NotNil(t, cusp.Cusp)
	for _, m := range []float64{6, 9, 15, 30, 80} {
		require.Equal(t, mom.CFunc.Eval(m), cusp.CFunc.Eval(m), "m=%g", m)
	}
}

func TestSolveMoMCuspWithValue(t *testing.T) {
	s := newBaseline(t, Options{VFunc: true})
	sol, err := s.SolveMoMCusp(terminal())
	require.NoError(t, err)
	require.NotNil(t, sol.VFunc)

	// The value side uses the standard moderation build; the cusp split
	// applies to consumption only.
	require.InEpsilon(t, -2.012972319615, sol.VFunc.Eval(1), 1e-9)
	require.InEpsilon(t, -1.301064001731, sol.VFunc.Eval(2), 1e-9)
}
