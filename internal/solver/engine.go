package solver

import (
	"fmt"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
)

// Engine chains one-period solves backward from the terminal period with
// time-invariant parameters.
type Engine struct {
	solver *Solver
	method model.Method
}

func NewEngine(solver *Solver, method model.Method) (*Engine, error) {
	if solver == nil {
		return nil, fmt.Errorf("solver is nil")
	}
	if _, err := model.ParseMethod(string(method)); err != nil {
		return nil, err
	}
	return &Engine{solver: solver, method: method}, nil
}

// Run solves a horizon of the given number of decision periods. The
// result has periods+1 entries: index 0 is the first decision period
// (furthest from the end of life), the last entry is the terminal
// consume-everything solution.
func (e *Engine) Run(periods int) ([]*model.Solution, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods must be >= 1, got %d", periods)
	}

	sols := make([]*model.Solution, periods+1)
	sols[periods] = model.TerminalSolution(e.solver.params.CRRA)
	for t := periods - 1; t >= 0; t-- {
		sol, err := e.solver.Solve(e.method, sols[t+1])
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", t, err)
		}
		sols[t] = sol
	}
	return sols, nil
}

// SolveScenario wires a scenario end to end: discretize the income
// process, build the asset grid, construct the solver and run the
// backward induction. The returned sequence is ordered as in Engine.Run.
func SolveScenario(sc model.Scenario) ([]*model.Solution, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		return nil, fmt.Errorf("income process: %w", err)
	}
	aXtra, err := ExpMultGrid(sc.Grid)
	if err != nil {
		return nil, fmt.Errorf("asset grid: %w", err)
	}
	sv, err := New(sc.Params, shocks, aXtra, Options{
		Cubic:  sc.Cubic,
		VFunc:  sc.VFunc,
		Extrap: sc.Extrap,
		Risky:  sc.Risky,
	})
	if err != nil {
		return nil, err
	}
	eng, err := NewEngine(sv, sc.Method)
	if err != nil {
		return nil, err
	}
	return eng.Run(sc.Periods)
}
