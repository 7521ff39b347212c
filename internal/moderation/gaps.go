package moderation

import "fmt"

// Gaps places the synthetic extrapolation nodes of the moderation
// interpolants, measured in mu distance from the edge gridpoints. The
// synthetic nodes extend the edge values linearly with the analytic edge
// slopes, so extrapolated chi stays on its asymptote.
type Gaps struct {
	Left  float64
	Right float64
}

// DefaultGaps is the standard placement: a short reach below the bottom
// gridpoint, a longer one above the top where chi is closest to linear.
func DefaultGaps() Gaps {
	return Gaps{Left: 0.05, Right: 0.5}
}

func (g Gaps) Validate() error {
	if g.Left <= 0 {
		return fmt.Errorf("moderation: left gap must be > 0, got %g", g.Left)
	}
	if g.Right <= 0 {
		return fmt.Errorf("moderation: right gap must be > 0, got %g", g.Right)
	}
	return nil
}
