package moderation

import (
	"fmt"

	"consumption-solver/internal/interp"
	"consumption-solver/internal/model"
)

// Curve is the input to Build: values solved on the endogenous grid,
// the analytic slope d(omega)/d(mu) at each gridpoint, and the two linear
// bounds the values must stay between. Values may be consumption or a
// pseudo-inverse value function; the transform does not care.
type Curve struct {
	MNrm    []float64
	Values  []float64
	OmegaMu []float64
	MNrmMin float64
	Upper   model.Func
	Lower   model.Func
}

func (c Curve) validate() error {
	n := len(c.MNrm)
	if n == 0 {
		return fmt.Errorf("moderation: empty grid")
	}
	if len(c.Values) != n || len(c.OmegaMu) != n {
		return fmt.Errorf("moderation: grid length mismatch: %d m, %d values, %d slopes", n, len(c.Values), len(c.OmegaMu))
	}
	if c.Upper == nil || c.Lower == nil {
		return fmt.Errorf("moderation: both bounds are required")
	}
	return nil
}

// Build computes the moderation ratio on the grid, augments it with one
// synthetic node per side, and interpolates omega and chi over mu. The
// chi interpolant is the evaluation path; the omega interpolant is kept
// for diagnostics.
func Build(c Curve, gaps Gaps, cubic bool) (*ModeratedFunc, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := gaps.Validate(); err != nil {
		return nil, err
	}

	n := len(c.MNrm)
	mu := make([]float64, n)
	omega := make([]float64, n)
	chi := make([]float64, n)
	chiMu := make([]float64, n)
	for i := 0; i < n; i++ {
		m := c.MNrm[i]
		mu[i] = LogMNrmEx(m, c.MNrmMin)
		w := Moderate(c.Values[i], c.Lower.Eval(m), c.Upper.Eval(m))
		if !(w > 0 && w < 1) {
			return nil, fmt.Errorf("moderation: ratio %g at gridpoint %d (m=%g) outside (0, 1); values must lie strictly between the bounds", w, i, m)
		}
		omega[i] = w
		chi[i] = Logit(w)
		chiMu[i] = c.OmegaMu[i] / (w * (1 - w))
	}

	muAug := augment(mu, -gaps.Left, gaps.Right)
	omegaAug := augmentLinear(omega, c.OmegaMu, gaps)
	omegaMuAug := padEdges(c.OmegaMu)
	chiAug := augmentLinear(chi, chiMu, gaps)
	chiMuAug := padEdges(chiMu)

	var omegaFn, chiFn interp.Interpolator
	var err error
	if cubic {
		omegaFn, err = interp.NewCubic(muAug, omegaAug, omegaMuAug)
		if err == nil {
			chiFn, err = interp.NewCubic(muAug, chiAug, chiMuAug)
		}
	} else {
		omegaFn, err = interp.NewLinear(muAug, omegaAug)
		if err == nil {
			chiFn, err = interp.NewLinear(muAug, chiAug)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("moderation: %w", err)
	}

	return &ModeratedFunc{
		mNrmMin: c.MNrmMin,
		omega:   omegaFn,
		chi:     chiFn,
		upper:   c.Upper,
		lower:   c.Lower,
	}, nil
}

// augment prepends and appends one node at the given offsets from the
// edges.
func augment(xs []float64, left, right float64) []float64 {
	n := len(xs)
	out := make([]float64, 0, n+2)
	out = append(out, xs[0]+left)
	out = append(out, xs...)
	out = append(out, xs[n-1]+right)
	return out
}

// augmentLinear extends the edge values linearly with the edge slopes.
func augmentLinear(ys, slopes []float64, gaps Gaps) []float64 {
	n := len(ys)
	out := make([]float64, 0, n+2)
	out = append(out, ys[0]-slopes[0]*gaps.Left)
	out = append(out, ys...)
	out = append(out, ys[n-1]+slopes[n-1]*gaps.Right)
	return out
}

// padEdges replicates the edge slopes onto the synthetic nodes.
func padEdges(slopes []float64) []float64 {
	n := len(slopes)
	out := make([]float64, 0, n+2)
	out = append(out, slopes[0])
	out = append(out, slopes...)
	out = append(out, slopes[n-1])
	return out
}
