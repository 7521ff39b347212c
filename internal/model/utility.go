package model

import "math"

// Utility is constant-relative-risk-aversion felicity
// u(c) = c^(1-rho)/(1-rho), with the derivative and inverse chain the
// solvers need. Params.Validate excludes the log case rho = 1, so no
// method below special-cases it.
type Utility struct {
	CRRA float64
}

// U evaluates utility at consumption c.
func (u Utility) U(c float64) float64 {
	return math.Pow(c, 1-u.CRRA) / (1 - u.CRRA)
}

// UP is marginal utility u'(c) = c^(-rho).
func (u Utility) UP(c float64) float64 {
	return math.Pow(c, -u.CRRA)
}

// UPP is the second derivative u''(c) = -rho*c^(-rho-1).
func (u Utility) UPP(c float64) float64 {
	return -u.CRRA * math.Pow(c, -u.CRRA-1)
}

// UInv recovers consumption from a utility level:
// u^-1(v) = ((1-rho)*v)^(1/(1-rho)). For rho > 1 the argument v is
// negative and (1-rho)*v is positive, so the power is well defined.
func (u Utility) UInv(v float64) float64 {
	return math.Pow((1-u.CRRA)*v, 1/(1-u.CRRA))
}

// UPInv inverts marginal utility: (u')^-1(x) = x^(-1/rho).
func (u Utility) UPInv(x float64) float64 {
	return math.Pow(x, -1/u.CRRA)
}

// UInvP is the derivative of UInv with respect to the utility level,
// ((1-rho)*v)^(rho/(1-rho)).
func (u Utility) UInvP(v float64) float64 {
	return math.Pow((1-u.CRRA)*v, u.CRRA/(1-u.CRRA))
}
