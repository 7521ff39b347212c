package model

// Func is a differentiable scalar function of normalized market resources.
// Consumption rules, pseudo-inverse value functions and interpolants all
// satisfy it.
type Func interface {
	Eval(m float64) float64
	Derivative(m float64) float64
}

// LinearConsumption is the perfect-foresight rule
// f(m) = Slope*(m + Intercept). The optimist bound uses Intercept = hNrm,
// the pessimist Intercept = -mNrmMin, the terminal rule Intercept = 0 with
// Slope = 1.
type LinearConsumption struct {
	Intercept float64
	Slope     float64
}

func (f LinearConsumption) Eval(m float64) float64 {
	return f.Slope * (m + f.Intercept)
}

func (f LinearConsumption) Derivative(float64) float64 {
	return f.Slope
}
