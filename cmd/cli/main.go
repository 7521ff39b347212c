package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"consumption-solver/internal/analysis"
	"consumption-solver/internal/config"
	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
	"consumption-solver/internal/preset"
	"consumption-solver/internal/solver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "solve":
		cmdSolve(os.Args[2:])
	case "policy":
		cmdPolicy(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "presets":
		cmdPresets(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli solve --config examples/scenario.yaml --out results/policy.csv")
	fmt.Println("  cli policy --config examples/scenario.yaml --m-min 1 --m-max 10 --points 20")
	fmt.Println("  cli compare --config examples/scenario.yaml --methods mom,egm")
	fmt.Println("  cli presets")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - solve prints the scalar summary; --out also writes the tabulated rule as CSV")
	fmt.Println("  - compare ranks methods by worst-case Euler error on a shared evaluation grid")
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (empty = baseline calibration)")
	method := fs.String("method", "", "Override the method (EGM, MOM, MOM_CUSP, MOM_STOCHASTIC_R)")
	periods := fs.Int("periods", 0, "Override the number of decision periods")
	outPath := fs.String("out", "", "Optional: write the tabulated rule as CSV")
	points := fs.Int("points", 50, "Gridpoints for the tabulated rule")
	mMax := fs.Float64("m-max", 0, "Upper end of the tabulation grid (0 = MNrmMin+20)")
	_ = fs.Parse(args)

	sc, err := loadScenario(*cfgPath, *method, *periods)
	if err != nil {
		panic(err)
	}
	sols, err := solver.SolveScenario(sc)
	if err != nil {
		panic(err)
	}

	first := sols[0]
	fmt.Printf("Method=%s Periods=%d CRRA=%g DiscFac=%g LivPrb=%g Rfree=%g PermGroFac=%g\n",
		first.Method, len(sols)-1, sc.Params.CRRA, sc.Params.DiscFac, sc.Params.LivPrb, sc.Params.Rfree, sc.Params.PermGroFac)
	fmt.Printf("MNrmMin=%.6f HNrm=%.6f MPCMin=%.6f MPCMax=%.6f\n",
		first.MNrmMin, first.HNrm, first.MPCMin, first.MPCMax)
	if first.Cusp != nil {
		fmt.Printf("MNrmCusp=%.6f\n", first.Cusp.MNrmCusp)
	}
	if first.StochasticR != nil {
		fmt.Printf("MPCMinStochastic=%.6f (deterministic %.6f)\n",
			first.StochasticR.MPCMinStochastic, first.StochasticR.MPCMinDeterministic)
	}

	if *outPath == "" {
		return
	}
	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		panic(err)
	}
	rows, err := analysis.EvalPolicy(sc.Params, shocks, sols[0], sols[1], policyGrid(first.MNrmMin, 0, *mMax, *points))
	if err != nil {
		panic(err)
	}
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := analysis.WritePolicyCSV(*outPath, rows); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), *outPath)
}

func cmdPolicy(args []string) {
	fs := flag.NewFlagSet("policy", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (empty = baseline calibration)")
	method := fs.String("method", "", "Override the method (EGM, MOM, MOM_CUSP, MOM_STOCHASTIC_R)")
	mMin := fs.Float64("m-min", 0, "Lower end of the grid (0 = one step above MNrmMin)")
	mMax := fs.Float64("m-max", 0, "Upper end of the grid (0 = MNrmMin+20)")
	points := fs.Int("points", 20, "Gridpoints")
	_ = fs.Parse(args)

	sc, err := loadScenario(*cfgPath, *method, 0)
	if err != nil {
		panic(err)
	}
	sols, err := solver.SolveScenario(sc)
	if err != nil {
		panic(err)
	}
	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		panic(err)
	}

	sol := sols[0]
	grid := policyGrid(sol.MNrmMin, *mMin, *mMax, *points)
	rows, err := analysis.EvalPolicy(sc.Params, shocks, sol, sols[1], grid)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-10s %-10s %-10s %-10s %-10s %-10s %-10s %-10s\n",
		"m", "c", "mpc", "a", "c_pes", "c_opt", "omega", "euler")
	for _, r := range rows {
		fmt.Printf("%-10.4f %-10.4f %-10.4f %-10.4f %-10s %-10s %-10s %-10.2e\n",
			r.MNrm, r.CNrm, r.MPC, r.ANrm,
			fmtOpt(r.CPes), fmtOpt(r.COpt), fmtOpt(r.Omega), r.EulerError)
	}
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (empty = baseline calibration)")
	methodsFlag := fs.String("methods", "", "Comma-separated method names (empty = all)")
	mMin := fs.Float64("m-min", 0, "Lower end of the evaluation grid (0 = MNrmMin+1)")
	mMax := fs.Float64("m-max", 0, "Upper end of the evaluation grid (0 = MNrmMin+20)")
	points := fs.Int("points", 100, "Evaluation gridpoints")
	_ = fs.Parse(args)

	sc, err := loadScenario(*cfgPath, "", 0)
	if err != nil {
		panic(err)
	}

	methods := model.Methods()
	if *methodsFlag != "" {
		methods = methods[:0]
		for _, name := range splitList(*methodsFlag) {
			m, err := model.ParseMethod(name)
			if err != nil {
				panic(err)
			}
			methods = append(methods, m)
		}
	}

	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		panic(err)
	}
	aXtra, err := solver.ExpMultGrid(sc.Grid)
	if err != nil {
		panic(err)
	}
	sv, err := solver.New(sc.Params, shocks, aXtra, solver.Options{
		Cubic:  sc.Cubic,
		VFunc:  sc.VFunc,
		Extrap: sc.Extrap,
		Risky:  sc.Risky,
	})
	if err != nil {
		panic(err)
	}

	byMethod := map[model.Method][]*model.Solution{}
	for _, m := range methods {
		eng, err := solver.NewEngine(sv, m)
		if err != nil {
			panic(err)
		}
		sols, err := eng.Run(sc.Periods)
		if err != nil {
			fmt.Printf("skipping %s: %v\n", m, err)
			continue
		}
		byMethod[m] = sols
	}
	if len(byMethod) == 0 {
		panic(fmt.Errorf("no method produced a solution"))
	}

	var mn float64
	for _, sols := range byMethod {
		mn = sols[0].MNrmMin
		break
	}
	hi := *mMax
	if hi == 0 {
		hi = mn + 20
	}
	lo := *mMin
	if lo <= mn {
		lo = mn + 1
	}

	ranked, err := analysis.RankByEulerError(sc.Params, shocks, byMethod, analysis.EvalGrid(lo, hi, *points))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-18s %-8s %-12s %-12s %-12s %-6s\n",
		"rank", "method", "count", "max-euler", "mean-euler", "p95-euler", "viol")
	for i, r := range ranked {
		fmt.Printf("%-4d %-18s %-8d %-12.3e %-12.3e %-12.3e %-6d\n",
			i+1, r.Method, r.Count, r.MaxEulerError, r.MeanEulerError, r.P95EulerError, r.BoundViolations)
	}
}

func cmdPresets(args []string) {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	path := fs.String("file", "", "Presets file (empty = $PRESETS_FILE or ./data/presets.json)")
	_ = fs.Parse(args)

	list := preset.Available(*path)
	fmt.Printf("%-16s %-6s %-8s %-7s %-7s %-8s %-10s\n",
		"name", "crra", "disc", "liv", "rfree", "growth", "boro_cnst")
	for _, p := range list.Presets {
		boro := "none"
		if p.BoroCnstArt != nil {
			boro = strconv.FormatFloat(*p.BoroCnstArt, 'f', 2, 64)
		}
		fmt.Printf("%-16s %-6.2f %-8.3f %-7.3f %-7.3f %-8.3f %-10s\n",
			p.Name, p.CRRA, p.DiscFac, p.LivPrb, p.Rfree, p.PermGroFac, boro)
	}
}

func loadScenario(cfgPath, method string, periods int) (model.Scenario, error) {
	sc := model.DefaultScenario()
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return model.Scenario{}, err
		}
		sc, err = cfg.ToScenario()
		if err != nil {
			return model.Scenario{}, err
		}
	}
	if method != "" {
		m, err := model.ParseMethod(method)
		if err != nil {
			return model.Scenario{}, err
		}
		sc.Method = m
	}
	if periods > 0 {
		sc.Periods = periods
	}
	return sc, nil
}

// policyGrid applies the tabulation defaults shared by solve and policy.
func policyGrid(mNrmMin, mMin, mMax float64, points int) []float64 {
	if mMax == 0 {
		mMax = mNrmMin + 20
	}
	if mMin <= mNrmMin {
		mMin = mNrmMin + (mMax-mNrmMin)/float64(points)
	}
	return analysis.EvalGrid(mMin, mMax, points)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fmtOpt(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return strconv.FormatFloat(x, 'f', 4, 64)
}
