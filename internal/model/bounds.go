package model

import "math"

// Bound is a perfect-foresight bounding policy: a linear consumption rule
// together with the value and marginal-value functions consistent with it.
// The moderation solvers keep the realist's rule between two of these.
type Bound struct {
	CFunc  LinearConsumption
	VFunc  *ValueCRRA
	VPFunc *MargValueCRRA
}

// NewBound builds the bound with consumption c(m) = slope*(m + intercept).
// The pseudo-inverse value line shares the intercept; its slope is
// slope^(-rho/(1-rho)).
func NewBound(intercept, slope, crra float64) *Bound {
	cFunc := LinearConsumption{Intercept: intercept, Slope: slope}
	vNvrs := LinearConsumption{
		Intercept: intercept,
		Slope:     math.Pow(slope, -crra/(1-crra)),
	}
	return &Bound{
		CFunc:  cFunc,
		VFunc:  NewValueCRRA(vNvrs, crra),
		VPFunc: NewMargValueCRRA(cFunc, crra),
	}
}
