package dist

import (
	"fmt"
	"math"
)

// Shocks is a discrete joint distribution of permanent and transitory
// income shocks: parallel atom arrays with one probability per pair.
type Shocks struct {
	Perm []float64
	Tran []float64
	Prob []float64
}

func (s *Shocks) Len() int { return len(s.Prob) }

func (s *Shocks) Validate() error {
	n := len(s.Prob)
	if n == 0 {
		return fmt.Errorf("dist: empty shock distribution")
	}
	if len(s.Perm) != n || len(s.Tran) != n {
		return fmt.Errorf("dist: atom count mismatch: %d perm, %d tran, %d prob", len(s.Perm), len(s.Tran), n)
	}
	sum := 0.0
	for i, p := range s.Prob {
		if p <= 0 || p > 1 {
			return fmt.Errorf("dist: probability %g at atom %d outside (0, 1]", p, i)
		}
		if s.Perm[i] <= 0 {
			return fmt.Errorf("dist: permanent shock %g at atom %d must be > 0", s.Perm[i], i)
		}
		if s.Tran[i] < 0 {
			return fmt.Errorf("dist: transitory shock %g at atom %d must be >= 0", s.Tran[i], i)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-8 {
		return fmt.Errorf("dist: probabilities sum to %g, want 1", sum)
	}
	return nil
}

// Expected returns the expectation of f over the shock pairs.
func (s *Shocks) Expected(f func(perm, tran float64) float64) float64 {
	sum := 0.0
	for i := range s.Prob {
		sum += s.Prob[i] * f(s.Perm[i], s.Tran[i])
	}
	return sum
}

// ExpectedOver returns, for every gridpoint a, the expectation of
// f(perm, tran, a). Accumulation runs atoms-outer so results are
// reproducible bit for bit across grid sizes.
func (s *Shocks) ExpectedOver(grid []float64, f func(perm, tran, a float64) float64) []float64 {
	out := make([]float64, len(grid))
	for j := range s.Prob {
		p, perm, tran := s.Prob[j], s.Perm[j], s.Tran[j]
		for i, a := range grid {
			out[i] += p * f(perm, tran, a)
		}
	}
	return out
}

// MinPerm returns the worst permanent shock realization.
func (s *Shocks) MinPerm() float64 {
	min := s.Perm[0]
	for _, v := range s.Perm[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// MinTran returns the worst transitory shock realization.
func (s *Shocks) MinTran() float64 {
	min := s.Tran[0]
	for _, v := range s.Tran[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// WorstIncomeProb returns the total probability of the atoms attaining the
// minimal income product perm*tran.
func (s *Shocks) WorstIncomeProb() float64 {
	worst := math.Inf(1)
	for i := range s.Prob {
		if v := s.Perm[i] * s.Tran[i]; v < worst {
			worst = v
		}
	}
	sum := 0.0
	for i := range s.Prob {
		if s.Perm[i]*s.Tran[i] == worst {
			sum += s.Prob[i]
		}
	}
	return sum
}
