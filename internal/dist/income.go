package dist

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"consumption-solver/internal/model"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// equiprobableLogNormal discretizes a mean-one lognormal into n atoms of
// equal probability. Each atom is the conditional mean of its quantile
// bin, so the discrete mean is exactly one and the tails are folded into
// the edge bins. A zero sigma degenerates to atoms of 1.
func equiprobableLogNormal(sigma float64, n int) []float64 {
	atoms := make([]float64, n)
	if sigma == 0 {
		for i := range atoms {
			atoms[i] = 1
		}
		return atoms
	}
	fn := float64(n)
	prev := 0.0
	for i := 1; i <= n; i++ {
		cur := 1.0
		if i < n {
			z := stdNormal.Quantile(float64(i) / fn)
			cur = stdNormal.CDF(z - sigma)
		}
		atoms[i-1] = fn * (cur - prev)
		prev = cur
	}
	return atoms
}

// mixUnemployment prepends an unemployment atom to the transitory shocks
// and rescales the employed atoms so the mean stays one.
func mixUnemployment(atoms, probs []float64, unempPrb, incUnemp float64) (newAtoms, newProbs []float64) {
	scale := (1 - unempPrb*incUnemp) / (1 - unempPrb)
	newAtoms = make([]float64, 0, len(atoms)+1)
	newProbs = make([]float64, 0, len(probs)+1)
	newAtoms = append(newAtoms, incUnemp)
	newProbs = append(newProbs, unempPrb)
	for i := range atoms {
		newAtoms = append(newAtoms, atoms[i]*scale)
		newProbs = append(newProbs, probs[i]*(1-unempPrb))
	}
	return newAtoms, newProbs
}

// NewIncomeProcess builds the joint permanent/transitory shock
// distribution: independent mean-one lognormals, the transitory one
// optionally mixed with an unemployment state. Atom order is permanent
// outer, transitory inner.
func NewIncomeProcess(ip model.IncomeParams) (*Shocks, error) {
	if err := ip.Validate(); err != nil {
		return nil, fmt.Errorf("income process: %w", err)
	}

	perm := equiprobableLogNormal(ip.PermShkStd, ip.PermShkCount)
	permProb := uniformProbs(ip.PermShkCount)

	tran := equiprobableLogNormal(ip.TranShkStd, ip.TranShkCount)
	tranProb := uniformProbs(ip.TranShkCount)
	if ip.UnempPrb > 0 {
		tran, tranProb = mixUnemployment(tran, tranProb, ip.UnempPrb, ip.IncUnemp)
	}

	n := len(perm) * len(tran)
	s := &Shocks{
		Perm: make([]float64, 0, n),
		Tran: make([]float64, 0, n),
		Prob: make([]float64, 0, n),
	}
	for i, pa := range perm {
		for j, ta := range tran {
			s.Perm = append(s.Perm, pa)
			s.Tran = append(s.Tran, ta)
			s.Prob = append(s.Prob, permProb[i]*tranProb[j])
		}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("income process: %w", err)
	}
	return s, nil
}

func uniformProbs(n int) []float64 {
	p := make([]float64, n)
	for i := range p {
		p[i] = 1 / float64(n)
	}
	return p
}
