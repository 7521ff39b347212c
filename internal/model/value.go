package model

// The value-function wrappers below store functions in pseudo-inverse space
// and apply the CRRA transform only at evaluation. Interpolating the
// pseudo-inverse vNvrs = u^-1(v) avoids the extreme curvature of v itself
// near the borrowing constraint.

// ValueCRRA is v(m) = u(vNvrs(m)) for a pseudo-inverse function vNvrs.
type ValueCRRA struct {
	Nvrs Func
	U    Utility
}

func NewValueCRRA(nvrs Func, crra float64) *ValueCRRA {
	return &ValueCRRA{Nvrs: nvrs, U: Utility{CRRA: crra}}
}

func (f *ValueCRRA) Eval(m float64) float64 {
	return f.U.U(f.Nvrs.Eval(m))
}

// Derivative is v'(m) = u'(vNvrs(m)) * vNvrs'(m).
func (f *ValueCRRA) Derivative(m float64) float64 {
	return f.U.UP(f.Nvrs.Eval(m)) * f.Nvrs.Derivative(m)
}

// MargValueCRRA is the envelope-condition marginal value v'(m) = u'(c(m)).
type MargValueCRRA struct {
	CFunc Func
	U     Utility
}

func NewMargValueCRRA(cFunc Func, crra float64) *MargValueCRRA {
	return &MargValueCRRA{CFunc: cFunc, U: Utility{CRRA: crra}}
}

func (f *MargValueCRRA) Eval(m float64) float64 {
	return f.U.UP(f.CFunc.Eval(m))
}

// Derivative is v''(m) = u''(c(m)) * c'(m).
func (f *MargValueCRRA) Derivative(m float64) float64 {
	return f.U.UPP(f.CFunc.Eval(m)) * f.CFunc.Derivative(m)
}

// MargMargValueCRRA is v''(m) = u''(c(m)) * c'(m), evaluation only.
type MargMargValueCRRA struct {
	CFunc Func
	U     Utility
}

func NewMargMargValueCRRA(cFunc Func, crra float64) *MargMargValueCRRA {
	return &MargMargValueCRRA{CFunc: cFunc, U: Utility{CRRA: crra}}
}

func (f *MargMargValueCRRA) Eval(m float64) float64 {
	return f.U.UPP(f.CFunc.Eval(m)) * f.CFunc.Derivative(m)
}
