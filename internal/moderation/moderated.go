package moderation

import (
	"consumption-solver/internal/interp"
	"consumption-solver/internal/model"
)

// ModeratedFunc evaluates a function pinned between two linear bounds:
// f(m) = lower(m) + omega*(upper(m) - lower(m)), with omega = expit(chi)
// and chi interpolated over mu = log(m - mNrmMin). Because chi is
// asymptotically linear in mu, queries far outside the solved grid stay
// strictly between the bounds.
type ModeratedFunc struct {
	mNrmMin float64
	omega   interp.Interpolator
	chi     interp.Interpolator
	upper   model.Func
	lower   model.Func
}

var _ model.Func = (*ModeratedFunc)(nil)

func (f *ModeratedFunc) Eval(m float64) float64 {
	mu := LogMNrmEx(m, f.mNrmMin)
	up := f.upper.Eval(m)
	lo := f.lower.Eval(m)
	return lo + Expit(f.chi.Eval(mu))*(up-lo)
}

// Derivative applies the product rule through mu, chi and the bounds:
// f' = lower' + omega*(upper' - lower') + omega*(1-omega)*chi'(mu)/mEx * (upper - lower).
// With equal bound slopes this reduces to the familiar
// MPC = MPCmin*(1 + (hEx/mEx)*dOmega/dMu).
func (f *ModeratedFunc) Derivative(m float64) float64 {
	mu := LogMNrmEx(m, f.mNrmMin)
	up := f.upper.Eval(m)
	lo := f.lower.Eval(m)
	upP := f.upper.Derivative(m)
	loP := f.lower.Derivative(m)
	omega := Expit(f.chi.Eval(mu))
	omegaM := omega * (1 - omega) * f.chi.Derivative(mu) / (m - f.mNrmMin)
	return loP + omega*(upP-loP) + omegaM*(up-lo)
}

// Omega returns the moderation ratio at m along the evaluation path.
func (f *ModeratedFunc) Omega(m float64) float64 {
	return Expit(f.chi.Eval(LogMNrmEx(m, f.mNrmMin)))
}

// Chi returns the interpolated logit ratio at m.
func (f *ModeratedFunc) Chi(m float64) float64 {
	return f.chi.Eval(LogMNrmEx(m, f.mNrmMin))
}

// MNrmMin returns the lower resource bound of the transform.
func (f *ModeratedFunc) MNrmMin() float64 { return f.mNrmMin }

// OmegaFn exposes the informational omega interpolant over mu.
func (f *ModeratedFunc) OmegaFn() interp.Interpolator { return f.omega }

// ChiFn exposes the chi interpolant over mu.
func (f *ModeratedFunc) ChiFn() interp.Interpolator { return f.chi }

// Bounds returns the upper and lower bounding functions.
func (f *ModeratedFunc) Bounds() (upper, lower model.Func) {
	return f.upper, f.lower
}
