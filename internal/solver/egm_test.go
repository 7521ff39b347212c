package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"consumption-solver/internal/model"
)

func TestEGMStepBaselineGrids(t *testing.T) {
	s := newBaseline(t, Options{})
	next := terminal()
	p, err := s.Prepare(next)
	require.NoError(t, err)

	g := s.egmStep(s.aXtra, p, next)
	require.Len(t, g.mNrm, 48)

	require.InEpsilon(t, 0.837757368348, g.cNrm[0], 1e-9)
	require.InEpsilon(t, 0.838757368348, g.mNrm[0], 1e-9)
	require.InEpsilon(t, 21.949371726114, g.cNrm[47], 1e-9)
	require.InEpsilon(t, 41.949371726114, g.mNrm[47], 1e-9)

	for i := range g.mNrm {
		require.InDelta(t, g.cNrm[i]+g.aNrm[i], g.mNrm[i], 1e-12, "m = c + a at gridpoint %d", i)
		if i > 0 {
			require.Greater(t, g.cNrm[i], g.cNrm[i-1], "consumption not increasing at %d", i)
			require.Greater(t, g.mNrm[i], g.mNrm[i-1], "resources not increasing at %d", i)
		}
	}
}

func TestMPCVectorWithinBounds(t *testing.T) {
	s := newBaseline(t, Options{})
	next := terminal()
	p, err := s.Prepare(next)
	require.NoError(t, err)
	g := s.egmStep(s.aXtra, p, next)

	mpc := s.mpcVector(g, p, next)
	require.InEpsilon(t, 0.621872438969, mpc[0], 1e-9)
	require.InEpsilon(t, 0.511359418011, mpc[47], 1e-9)
	for i := range mpc {
		require.Greater(t, mpc[i], p.MPCMin, "MPC at gridpoint %d", i)
		require.Less(t, mpc[i], p.MPCMax, "MPC at gridpoint %d", i)
		if i > 0 {
			require.Less(t, mpc[i], mpc[i-1], "MPC not decreasing at %d", i)
		}
	}
}

func TestSolveEGMLinear(t *testing.T) {
	s := newBaseline(t, Options{})
	sol, err := s.SolveEGM(terminal())
	require.NoError(t, err)
	require.Equal(t, model.MethodEGM, sol.Method)
	require.Nil(t, sol.VFunc)

	// Below the first endogenous gridpoint the constraint binds: c = m.
	require.InDelta(t, 0.1, sol.CFunc.Eval(0.1), 1e-14)
	require.InDelta(t, 0.5, sol.CFunc.Eval(0.5), 1e-14)
	require.InDelta(t, 1.0, sol.CFunc.Derivative(0.3), 1e-14)

	require.InEpsilon(t, 0.935662214545, sol.CFunc.Eval(1), 1e-9)
	require.InEpsilon(t, 1.488441078067, sol.CFunc.Eval(2), 1e-9)
	require.InEpsilon(t, 3.044420816329, sol.CFunc.Eval(5), 1e-9)
	require.InEpsilon(t, 5.607847138064, sol.CFunc.Eval(10), 1e-9)
	require.InEpsilon(t, 26.066196908149, sol.CFunc.Eval(50), 1e-9)
}

func TestSolveEGMLinearExtrapolationCrossesOptimist(t *testing.T) {
	s := newBaseline(t, Options{})
	sol, err := s.SolveEGM(terminal())
	require.NoError(t, err)

	opt := sol.Optimist.CFunc
	// Inside the grid the rule respects the perfect-foresight bound...
	require.Less(t, sol.CFunc.Eval(40), opt.Eval(40))
	// ...but the frozen top-segment slope exceeds MPCmin, so far enough
	// above the grid the extrapolation predicts negative precautionary
	// saving.
	require.Greater(t, sol.CFunc.Eval(78), opt.Eval(78))
	require.Greater(t, sol.CFunc.Eval(500), opt.Eval(500))
}

func TestSolveEGMWithLimitDecay(t *testing.T) {
	s := newBaseline(t, Options{Extrap: true})
	sol, err := s.SolveEGM(terminal())
	require.NoError(t, err)

	// Interior and constrained queries are untouched.
	require.InDelta(t, 0.5, sol.CFunc.Eval(0.5), 1e-14)
	require.InEpsilon(t, 0.935662214545, sol.CFunc.Eval(1), 1e-9)

	// Above the grid the rule decays toward the optimist asymptote
	// instead of continuing the top segment.
	require.InEpsilon(t, 23.509356278282, sol.CFunc.Eval(45), 1e-9)
	require.InEpsilon(t, 26.066157624466, sol.CFunc.Eval(50), 1e-9)
	require.InEpsilon(t, 51.633182710720, sol.CFunc.Eval(100), 1e-9)
	require.InEpsilon(t, 511.822395244251, sol.CFunc.Eval(1000), 1e-9)

	opt := sol.Optimist.CFunc
	for _, m := range []float64{45, 78, 100, 500, 5000} {
		require.Less(t, sol.CFunc.Eval(m), opt.Eval(m), "m=%g", m)
	}
	require.InEpsilon(t, 0.511357543768, sol.CFunc.Derivative(50), 1e-8)
	require.InDelta(t, sol.MPCMin, sol.CFunc.Derivative(1e6), 1e-6)
}

func TestSolveEGMCubic(t *testing.T) {
	s := newBaseline(t, Options{Cubic: true})
	sol, err := s.SolveEGM(terminal())
	require.NoError(t, err)

	// The Hermite segment from the kink carries slope MPCmax = 1, so the
	// constrained region is close to but not exactly c = m.
	require.InEpsilon(t, 0.103976031770, sol.CFunc.Eval(0.1), 1e-9)
	require.InEpsilon(t, 0.545386763777, sol.CFunc.Eval(0.5), 1e-9)

	require.InEpsilon(t, 0.935682890284, sol.CFunc.Eval(1), 1e-9)
	require.InEpsilon(t, 1.488450532336, sol.CFunc.Eval(2), 1e-9)
	require.InEpsilon(t, 3.044444197802, sol.CFunc.Eval(5), 1e-9)
	require.InEpsilon(t, 5.607853678736, sol.CFunc.Eval(10), 1e-9)
	require.InEpsilon(t, 26.066136314871, sol.CFunc.Eval(50), 1e-9)
}

func TestSolveEGMValueFunction(t *testing.T) {
	s := newBaseline(t, Options{VFunc: true})
	sol, err := s.SolveEGM(terminal())
	require.NoError(t, err)
	require.NotNil(t, sol.VFunc)

	require.InEpsilon(t, -3.716140102601, sol.VFunc.Eval(0.5), 1e-9)
	require.InEpsilon(t, -2.012994022111, sol.VFunc.Eval(1), 1e-9)
	require.InEpsilon(t, -1.301067703508, sol.VFunc.Eval(2), 1e-9)
	require.InEpsilon(t, -0.641351117791, sol.VFunc.Eval(5), 1e-9)
	require.InEpsilon(t, -0.348600493257, sol.VFunc.Eval(10), 1e-9)

	// Value is increasing and concave in m.
	vPrev := sol.VFunc.Eval(0.3)
	dPrev := sol.VFunc.Derivative(0.3)
	for _, m := range []float64{0.7, 1.3, 2.5, 6, 15} {
		v, d := sol.VFunc.Eval(m), sol.VFunc.Derivative(m)
		require.Greater(t, v, vPrev, "value not increasing at m=%g", m)
		require.Less(t, d, dPrev, "marginal value not decreasing at m=%g", m)
		vPrev, dPrev = v, d
	}

	const h = 1e-6
	for _, m := range []float64{0.93, 2.6, 7.1} {
		fd := (sol.VFunc.Eval(m+h) - sol.VFunc.Eval(m-h)) / (2 * h)
		require.InEpsilon(t, fd, sol.VFunc.Derivative(m), 1e-5, "m=%g", m)
	}
}

func TestEnvelopeConditionByConstruction(t *testing.T) {
	s := newBaseline(t, Options{})
	sol, err := s.SolveEGM(terminal())
	require.NoError(t, err)

	u := model.Utility{CRRA: 2}
	for _, m := range []float64{0.4, 1.2, 3.5, 17} {
		require.InEpsilon(t, u.UP(sol.CFunc.Eval(m)), sol.VPFunc.Eval(m), 1e-12, "m=%g", m)
		wantVPP := u.UPP(sol.CFunc.Eval(m)) * sol.CFunc.Derivative(m)
		require.InEpsilon(t, wantVPP, sol.VPPFunc.Eval(m), 1e-12, "m=%g", m)
	}
}
