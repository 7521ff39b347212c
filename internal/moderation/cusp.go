package moderation

import "consumption-solver/internal/model"

// CuspPoint is where the tighter upper bound MPCmax*(m - mNrmMin) crosses
// the optimist rule MPCmin*(m + hNrm):
// mNrmCusp = mNrmMin + MPCmin*(hNrm + mNrmMin)/(MPCmax - MPCmin).
// Above it the optimist is the binding upper bound; below it the tighter
// bound is.
func CuspPoint(mNrmMin, hNrm, mpcMin, mpcMax float64) float64 {
	return mNrmMin + mpcMin*(hNrm+mNrmMin)/(mpcMax-mpcMin)
}

// CuspFunc dispatches between two independently moderated regions at the
// cusp point: below it the low region (pessimist to tighter bound), at or
// above it the high region (pessimist to optimist).
type CuspFunc struct {
	mNrmCusp float64
	low      *ModeratedFunc
	high     *ModeratedFunc
}

var _ model.Func = (*CuspFunc)(nil)

func NewCuspFunc(mNrmCusp float64, low, high *ModeratedFunc) *CuspFunc {
	return &CuspFunc{mNrmCusp: mNrmCusp, low: low, high: high}
}

func (f *CuspFunc) Eval(m float64) float64 {
	return f.region(m).Eval(m)
}

func (f *CuspFunc) Derivative(m float64) float64 {
	return f.region(m).Derivative(m)
}

// Omega returns the moderation ratio of the active region.
func (f *CuspFunc) Omega(m float64) float64 {
	return f.region(m).Omega(m)
}

// Chi returns the logit ratio of the active region.
func (f *CuspFunc) Chi(m float64) float64 {
	return f.region(m).Chi(m)
}

func (f *CuspFunc) region(m float64) *ModeratedFunc {
	if m < f.mNrmCusp {
		return f.low
	}
	return f.high
}

// MNrmCusp returns the dispatch point.
func (f *CuspFunc) MNrmCusp() float64 { return f.mNrmCusp }

// Low returns the below-cusp region.
func (f *CuspFunc) Low() *ModeratedFunc { return f.low }

// High returns the at-or-above-cusp region.
func (f *CuspFunc) High() *ModeratedFunc { return f.high }
