package model

import (
	"fmt"
)

// Params defines the preferences and prices of the one-period
// consumption-saving problem. All quantities are normalized by permanent
// income.
// Conventions:
// - CRRA: relative risk aversion rho, > 0 and != 1 (log utility unsupported)
// - DiscFac: pure time discount factor beta
// - LivPrb: survival probability, scales the discount factor
// - Rfree: gross risk-free return R
// - PermGroFac: gross permanent income growth Gamma
// - BoroCnstArt: artificial borrowing limit in normalized m; nil means the
//   natural constraint alone applies
type Params struct {
	CRRA        float64
	DiscFac     float64
	LivPrb      float64
	Rfree       float64
	PermGroFac  float64
	BoroCnstArt *float64
}

// DiscFacEff is the effective discount factor beta*LivPrb.
func (p Params) DiscFacEff() float64 {
	return p.DiscFac * p.LivPrb
}

// Utility returns the CRRA utility bundle for these preferences.
func (p Params) Utility() Utility {
	return Utility{CRRA: p.CRRA}
}

func (p Params) Validate() error {
	if p.CRRA <= 0 || p.CRRA == 1 {
		return fmt.Errorf("CRRA must be > 0 and != 1, got %g", p.CRRA)
	}
	if p.DiscFac <= 0 {
		return fmt.Errorf("DiscFac must be > 0, got %g", p.DiscFac)
	}
	if p.LivPrb <= 0 || p.LivPrb > 1 {
		return fmt.Errorf("LivPrb must be in (0, 1], got %g", p.LivPrb)
	}
	if eff := p.DiscFacEff(); eff <= 0 || eff >= 1 {
		return fmt.Errorf("effective discount factor DiscFac*LivPrb must be in (0, 1), got %g", eff)
	}
	if p.Rfree <= 0 {
		return fmt.Errorf("Rfree must be > 0, got %g", p.Rfree)
	}
	if p.PermGroFac <= 0 {
		return fmt.Errorf("PermGroFac must be > 0, got %g", p.PermGroFac)
	}
	return nil
}
