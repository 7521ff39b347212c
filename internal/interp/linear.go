package interp

// Linear is a piecewise-linear interpolant. Queries outside the grid
// extrapolate along the edge segments; with a limiting function set, the
// gap above the grid decays exponentially toward it.
type Linear struct {
	xs, ys []float64
	lim    *limit
}

// NewLinear builds a linear interpolant over strictly increasing xs.
func NewLinear(xs, ys []float64) (*Linear, error) {
	if err := checkGrid(xs, ys); err != nil {
		return nil, err
	}
	f := &Linear{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}
	return f, nil
}

// NewLinearWithLimit builds a linear interpolant that approaches
// intercept + slope*x above the grid.
func NewLinearWithLimit(xs, ys []float64, intercept, slope float64) (*Linear, error) {
	f, err := NewLinear(xs, ys)
	if err != nil {
		return nil, err
	}
	n := len(f.xs)
	topSlope := (f.ys[n-1] - f.ys[n-2]) / (f.xs[n-1] - f.xs[n-2])
	lim := newLimit(intercept, slope, f.xs[n-1], f.ys[n-1], topSlope)
	f.lim = &lim
	return f, nil
}

func (f *Linear) Eval(x float64) float64 {
	if f.lim != nil && f.lim.decay && x > f.lim.xTop {
		return f.lim.eval(x)
	}
	i := segment(f.xs, x)
	alpha := (x - f.xs[i-1]) / (f.xs[i] - f.xs[i-1])
	return f.ys[i-1] + alpha*(f.ys[i]-f.ys[i-1])
}

func (f *Linear) Derivative(x float64) float64 {
	if f.lim != nil && f.lim.decay && x > f.lim.xTop {
		return f.lim.derivative(x)
	}
	i := segment(f.xs, x)
	return (f.ys[i] - f.ys[i-1]) / (f.xs[i] - f.xs[i-1])
}

func (f *Linear) EvalAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f.Eval(x)
	}
	return out
}

// Nodes returns copies of the node arrays.
func (f *Linear) Nodes() (xs, ys []float64) {
	return append([]float64(nil), f.xs...), append([]float64(nil), f.ys...)
}
