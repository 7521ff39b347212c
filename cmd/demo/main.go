package main

import (
	"flag"
	"fmt"
	"math"

	"consumption-solver/internal/analysis"
	"consumption-solver/internal/config"
	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
	"consumption-solver/internal/solver"
)

// Demo:
// - Solve the baseline scenario (or one loaded via --config)
// - Tabulate the consumption rule with its bounds and Euler errors
// - Print the first rows to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML scenario (optional)")
	methodName := flag.String("method", "", "Override the method (EGM, MOM, MOM_CUSP, MOM_STOCHASTIC_R)")
	n := flag.Int("n", 12, "Number of rows to print")
	points := flag.Int("points", 50, "Gridpoints for the tabulated rule")
	outCSV := flag.String("out", "", "Optional path to write the tabulated rule as CSV (e.g. results/policy.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	sc := model.DefaultScenario()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		sc, err = cfg.ToScenario()
		if err != nil {
			panic(err)
		}
	}
	if *methodName != "" {
		m, err := model.ParseMethod(*methodName)
		if err != nil {
			panic(err)
		}
		sc.Method = m
	}

	sols, err := solver.SolveScenario(sc)
	if err != nil {
		panic(err)
	}
	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		panic(err)
	}

	first := sols[0]
	mMax := first.MNrmMin + 20
	mMin := first.MNrmMin + (mMax-first.MNrmMin)/float64(*points)
	grid := analysis.EvalGrid(mMin, mMax, *points)
	rows, err := analysis.EvalPolicy(sc.Params, shocks, sols[0], sols[1], grid)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Solved %s over %d period(s): CRRA=%g DiscFac=%g LivPrb=%g Rfree=%g PermGroFac=%g\n",
		first.Method, len(sols)-1, sc.Params.CRRA, sc.Params.DiscFac, sc.Params.LivPrb, sc.Params.Rfree, sc.Params.PermGroFac)
	fmt.Printf("MNrmMin=%.4f HNrm=%.4f MPCMin=%.4f MPCMax=%.4f\n\n", first.MNrmMin, first.HNrm, first.MPCMin, first.MPCMax)

	for i := 0; i < min(*n, len(rows)); i++ {
		r := rows[i]
		fmt.Printf(
			"m=%8.4f  c=%8.4f  mpc=%6.4f  a=%8.4f  bounds=%s..%s  omega=%s  euler=%9.2e\n",
			r.MNrm, r.CNrm, r.MPC, r.ANrm,
			fmtOpt(r.CPes), fmtOpt(r.COpt), fmtOpt(r.Omega), r.EulerError,
		)
	}

	if *outCSV != "" {
		if err := analysis.WritePolicyCSV(*outCSV, rows); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	diag, err := analysis.Diagnose(sc.Params, shocks, sols[0], sols[1], grid)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nDone. Max Euler error=%.3e  Bound violations=%d\n", diag.MaxEulerError, diag.BoundViolations)
}

func fmtOpt(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return fmt.Sprintf("%.4f", x)
}
