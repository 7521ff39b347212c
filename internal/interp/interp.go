// Package interp provides piecewise linear and cubic Hermite interpolation
// on strictly increasing grids, with linear extrapolation beyond the grid
// and an optional exponential-decay approach to a limiting linear function
// above it.
package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Interpolator is a differentiable one-dimensional interpolant.
type Interpolator interface {
	Eval(x float64) float64
	Derivative(x float64) float64
	EvalAll(xs []float64) []float64
}

var (
	_ Interpolator = (*Linear)(nil)
	_ Interpolator = (*Cubic)(nil)
)

// limit describes the linear function intercept + slope*x that the
// interpolant approaches above its grid. The gap at the top node decays
// exponentially when the gap is positive and closing; otherwise
// extrapolation stays linear.
type limit struct {
	intercept float64
	slope     float64
	decay     bool
	gap       float64 // limit value minus node value at the top node
	rate      float64 // decay rate, >= 0
	xTop      float64
}

func newLimit(intercept, slope, xTop, yTop, slopeTop float64) limit {
	l := limit{intercept: intercept, slope: slope, xTop: xTop}
	l.gap = intercept + slope*xTop - yTop
	slopeDiff := slope - slopeTop
	if l.gap > 0 && slopeDiff <= 0 {
		l.decay = true
		l.rate = -slopeDiff / l.gap
	}
	return l
}

func (l limit) eval(x float64) float64 {
	return l.intercept + l.slope*x - l.gap*math.Exp(-l.rate*(x-l.xTop))
}

func (l limit) derivative(x float64) float64 {
	return l.slope + l.gap*l.rate*math.Exp(-l.rate*(x-l.xTop))
}

// segment returns the index i in [1, len(xs)-1] such that the interval
// (xs[i-1], xs[i]] covers x, clipping out-of-range queries to the edge
// segments.
func segment(xs []float64, x float64) int {
	i := sort.SearchFloat64s(xs, x)
	if i < 1 {
		return 1
	}
	if i > len(xs)-1 {
		return len(xs) - 1
	}
	return i
}

func checkGrid(xs, ys []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("interp: need at least 2 nodes, got %d", len(xs))
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("interp: node count mismatch: %d x vs %d y", len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return fmt.Errorf("interp: x values must be strictly increasing, violated at index %d (%g >= %g)", i, xs[i-1], xs[i])
		}
	}
	return nil
}

// ErrNoDerivatives is returned when cubic interpolation is requested
// without a derivative value per node.
var ErrNoDerivatives = errors.New("interp: cubic interpolation requires one derivative per node")
