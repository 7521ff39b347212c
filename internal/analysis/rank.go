package analysis

import (
	"fmt"
	"sort"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
)

type RankedMethod struct {
	PolicyDiagnostics
}

// RankByEulerError diagnoses the first decision period of each solved
// sequence against its own successor and sorts ascending by worst-case
// Euler error, most accurate first. Each sequence must be ordered as
// Engine.Run returns it.
func RankByEulerError(params model.Params, shocks *dist.Shocks, byMethod map[model.Method][]*model.Solution, mGrid []float64) ([]RankedMethod, error) {
	out := make([]RankedMethod, 0, len(byMethod))
	for method, sols := range byMethod {
		if len(sols) < 2 {
			return nil, fmt.Errorf("method %s: need at least one decision period and its successor, got %d solutions", method, len(sols))
		}
		d, err := Diagnose(params, shocks, sols[0], sols[1], mGrid)
		if err != nil {
			return nil, err
		}
		out = append(out, RankedMethod{PolicyDiagnostics: d})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MaxEulerError < out[j].MaxEulerError
	})
	return out, nil
}
