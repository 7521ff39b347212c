package moderation

import "math"

// The transforms below operate in the shifted log space mu = log(m - mNrmMin).
// The moderation ratio omega measures where a function sits between its
// bounds; its logit chi is asymptotically linear in mu, which is what makes
// interpolating chi safe far beyond the solved grid.

// LogMNrmEx maps market resources to mu = log(m - mNrmMin), via log1p so
// precision survives when m sits just above the bound.
func LogMNrmEx(m, mNrmMin float64) float64 {
	return math.Log1p(m - mNrmMin - 1)
}

// MNrmFromMu inverts LogMNrmEx.
func MNrmFromMu(mu, mNrmMin float64) float64 {
	return math.Expm1(mu) + mNrmMin + 1
}

// Moderate is the moderation ratio omega = (f - lower)/(upper - lower):
// 0 at the lower bound, 1 at the upper bound.
func Moderate(f, lower, upper float64) float64 {
	return (f - lower) / (upper - lower)
}

// Logit maps omega in (0,1) to chi on the whole real line.
func Logit(omega float64) float64 {
	return math.Log(omega) - math.Log1p(-omega)
}

// Expit inverts Logit, using the branch that cannot overflow for large
// |chi|.
func Expit(chi float64) float64 {
	if chi >= 0 {
		return 1 / (1 + math.Exp(-chi))
	}
	e := math.Exp(chi)
	return e / (1 + e)
}
