package interp

// Cubic is a piecewise cubic Hermite interpolant: each segment matches the
// values and derivatives at its two nodes. Below the grid it extrapolates
// linearly with the bottom-node derivative, above the grid with the
// top-node derivative, unless a decaying limit applies.
type Cubic struct {
	xs, ys, dydx []float64
	lim          *limit
}

// NewCubic builds a cubic Hermite interpolant over strictly increasing xs
// with one derivative value per node.
func NewCubic(xs, ys, dydx []float64) (*Cubic, error) {
	if err := checkGrid(xs, ys); err != nil {
		return nil, err
	}
	if len(dydx) != len(xs) {
		return nil, ErrNoDerivatives
	}
	f := &Cubic{
		xs:   append([]float64(nil), xs...),
		ys:   append([]float64(nil), ys...),
		dydx: append([]float64(nil), dydx...),
	}
	return f, nil
}

// NewCubicWithLimit builds a cubic Hermite interpolant that approaches
// intercept + slope*x above the grid.
func NewCubicWithLimit(xs, ys, dydx []float64, intercept, slope float64) (*Cubic, error) {
	f, err := NewCubic(xs, ys, dydx)
	if err != nil {
		return nil, err
	}
	n := len(f.xs)
	lim := newLimit(intercept, slope, f.xs[n-1], f.ys[n-1], f.dydx[n-1])
	f.lim = &lim
	return f, nil
}

func (f *Cubic) Eval(x float64) float64 {
	n := len(f.xs)
	if x < f.xs[0] {
		return f.ys[0] + f.dydx[0]*(x-f.xs[0])
	}
	if x > f.xs[n-1] {
		if f.lim != nil && f.lim.decay {
			return f.lim.eval(x)
		}
		return f.ys[n-1] + f.dydx[n-1]*(x-f.xs[n-1])
	}
	i := segment(f.xs, x)
	x0, x1 := f.xs[i-1], f.xs[i]
	span := x1 - x0
	t := (x - x0) / span
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*f.ys[i-1] + h10*span*f.dydx[i-1] + h01*f.ys[i] + h11*span*f.dydx[i]
}

func (f *Cubic) Derivative(x float64) float64 {
	n := len(f.xs)
	if x < f.xs[0] {
		return f.dydx[0]
	}
	if x > f.xs[n-1] {
		if f.lim != nil && f.lim.decay {
			return f.lim.derivative(x)
		}
		return f.dydx[n-1]
	}
	i := segment(f.xs, x)
	x0, x1 := f.xs[i-1], f.xs[i]
	span := x1 - x0
	t := (x - x0) / span
	t2 := t * t
	dh00 := 6*t2 - 6*t
	dh10 := 3*t2 - 4*t + 1
	dh01 := -6*t2 + 6*t
	dh11 := 3*t2 - 2*t
	return (dh00*f.ys[i-1]+dh01*f.ys[i])/span + dh10*f.dydx[i-1] + dh11*f.dydx[i]
}

func (f *Cubic) EvalAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f.Eval(x)
	}
	return out
}

// Nodes returns copies of the node arrays.
func (f *Cubic) Nodes() (xs, ys []float64) {
	return append([]float64(nil), f.xs...), append([]float64(nil), f.ys...)
}
