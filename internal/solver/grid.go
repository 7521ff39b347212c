package solver

import (
	"math"

	"consumption-solver/internal/model"
)

// ExpMultGrid builds the post-decision asset grid: Count points on
// [Min, Max], uniformly spaced after NestFac applications of log(1+x) so
// the points crowd toward the bottom where the consumption rule curves.
// NestFac 0 gives a uniform grid. The top point is exactly Max.
func ExpMultGrid(gp model.GridParams) ([]float64, error) {
	if err := gp.Validate(); err != nil {
		return nil, err
	}

	lo, hi := gp.Min, gp.Max
	for k := 0; k < gp.NestFac; k++ {
		lo = math.Log1p(lo)
		hi = math.Log1p(hi)
	}

	n := gp.Count
	grid := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		grid[i] = lo + step*float64(i)
	}
	grid[n-1] = hi

	for k := 0; k < gp.NestFac; k++ {
		for i := range grid {
			grid[i] = math.Expm1(grid[i])
		}
	}
	// Undo accumulated rounding at the endpoints.
	grid[0] = gp.Min
	grid[n-1] = gp.Max
	return grid, nil
}
