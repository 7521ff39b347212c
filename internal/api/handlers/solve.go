package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"consumption-solver/internal/analysis"
	"consumption-solver/internal/api/models"
	"consumption-solver/internal/config"
	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
	"consumption-solver/internal/preset"
	"consumption-solver/internal/solver"
)

// SolveHandler handles solve-related requests
type SolveHandler struct {
	store   *Store
	presets *preset.PresetList
}

// NewSolveHandler creates a new solve handler
func NewSolveHandler(store *Store, presets *preset.PresetList) *SolveHandler {
	if store == nil {
		store = NewStore()
	}
	if presets == nil {
		presets = preset.Available("")
	}
	return &SolveHandler{store: store, presets: presets}
}

// RunSolve handles POST /api/v1/solve
func (h *SolveHandler) RunSolve(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sc, err := h.buildScenario(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SCENARIO",
				Message: err.Error(),
			},
		})
		return
	}

	sols, err := solver.SolveScenario(sc)
	if err != nil {
		// Validation passed, so failures here are parameterizations the
		// solver rejects (patience violations, risky-return domain).
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SOLVE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	id := h.store.Put(&solvedScenario{Scenario: sc, Shocks: shocks, Solutions: sols})
	c.JSON(http.StatusOK, buildSolveResponse(id, sc, sols))
}

// GetSolution handles GET /api/v1/solutions/:id
func (h *SolveHandler) GetSolution(c *gin.Context) {
	id := c.Param("id")
	sv, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("no solution with id %q", id),
			},
		})
		return
	}
	c.JSON(http.StatusOK, buildSolveResponse(id, sv.Scenario, sv.Solutions))
}

// GetPolicy handles GET /api/v1/solutions/:id/policy
func (h *SolveHandler) GetPolicy(c *gin.Context) {
	id := c.Param("id")
	sv, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("no solution with id %q", id),
			},
		})
		return
	}

	var req models.PolicyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	decisionPeriods := len(sv.Solutions) - 1
	if req.Period < 0 || req.Period >= decisionPeriods {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PERIOD",
				Message: fmt.Sprintf("period must be in [0, %d), got %d", decisionPeriods, req.Period),
			},
		})
		return
	}
	sol := sv.Solutions[req.Period]
	next := sv.Solutions[req.Period+1]

	points := req.Points
	if points <= 0 {
		points = 50
	}
	mMax := req.MMax
	if mMax == 0 {
		mMax = sol.MNrmMin + 20
	}
	mMin := req.MMin
	if mMin <= sol.MNrmMin {
		// One grid step above the minimum, so the table starts where the
		// consumption rule is defined.
		mMin = sol.MNrmMin + (mMax-sol.MNrmMin)/float64(points)
	}
	if mMax <= mMin {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_GRID",
				Message: fmt.Sprintf("m_max must be > m_min, got m_min=%g m_max=%g", mMin, mMax),
			},
		})
		return
	}

	rows, err := analysis.EvalPolicy(sv.Scenario.Params, sv.Shocks, sol, next, analysis.EvalGrid(mMin, mMax, points))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_GRID",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.PolicyResponse{
		ID:     id,
		Period: req.Period,
		Method: string(sol.Method),
		Rows:   toPolicyRows(rows),
	})
}

// CompareMethods handles POST /api/v1/solve/compare
func (h *SolveHandler) CompareMethods(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sc, err := h.buildScenario(req.Scenario)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SCENARIO",
				Message: err.Error(),
			},
		})
		return
	}

	methods := model.Methods()
	if len(req.Methods) > 0 {
		methods = methods[:0]
		for _, name := range req.Methods {
			m, err := model.ParseMethod(name)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "INVALID_METHOD",
						Message: err.Error(),
					},
				})
				return
			}
			methods = append(methods, m)
		}
	}

	shocks, err := dist.NewIncomeProcess(sc.Income)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	aXtra, err := solver.ExpMultGrid(sc.Grid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	sv, err := solver.New(sc.Params, shocks, aXtra, solver.Options{
		Cubic:  sc.Cubic,
		VFunc:  sc.VFunc,
		Extrap: sc.Extrap,
		Risky:  sc.Risky,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SOLVE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	// Solve each method; the ones the parameterization rejects are
	// skipped rather than failing the whole comparison.
	byMethod := make(map[model.Method][]*model.Solution, len(methods))
	var lastErr error
	for _, m := range methods {
		eng, err := solver.NewEngine(sv, m)
		if err != nil {
			lastErr = err
			continue
		}
		sols, err := eng.Run(sc.Periods)
		if err != nil {
			lastErr = err
			continue
		}
		byMethod[m] = sols
	}
	if len(byMethod) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SOLVE_ERROR",
				Message: lastErr.Error(),
			},
		})
		return
	}

	points := req.Eval.Points
	if points <= 0 {
		points = 100
	}
	mn := byMethodMNrmMin(byMethod)
	mMax := req.Eval.MMax
	if mMax == 0 {
		mMax = mn + 20
	}
	mMin := req.Eval.MMin
	if mMin <= mn {
		// Well inside the feasible region: close to the constraint the
		// moderated rules' extrapolation error swamps everything else and
		// the ranking stops being informative.
		mMin = mn + 1
	}
	if mMax <= mMin {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_GRID",
				Message: fmt.Sprintf("m_max must be > m_min, got m_min=%g m_max=%g", mMin, mMax),
			},
		})
		return
	}

	ranked, err := analysis.RankByEulerError(sc.Params, shocks, byMethod, analysis.EvalGrid(mMin, mMax, points))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_GRID",
				Message: err.Error(),
			},
		})
		return
	}

	comparison := make([]models.MethodDiagnostics, 0, len(ranked))
	for i, r := range ranked {
		comparison = append(comparison, models.MethodDiagnostics{
			Rank:             i + 1,
			Method:           string(r.Method),
			Count:            r.Count,
			MaxEulerError:    r.MaxEulerError,
			MeanEulerError:   r.MeanEulerError,
			P95EulerError:    r.P95EulerError,
			BoundViolations:  r.BoundViolations,
			OmegaNonmonotone: r.OmegaNonmonotone,
			MinLowerGap:      r.MinLowerGap,
			MinUpperGap:      r.MinUpperGap,
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper methods

// buildScenario assembles the scenario from a request: preset model as
// the base when named, request fields merged on top, defaults for the
// rest. This is the same reduction the config file goes through.
func (h *SolveHandler) buildScenario(req models.SolveRequest) (model.Scenario, error) {
	cfg := &config.Config{
		Model: config.ModelConfig{
			CRRA:        req.Model.CRRA,
			DiscFac:     req.Model.DiscFac,
			LivPrb:      req.Model.LivPrb,
			Rfree:       req.Model.Rfree,
			PermGroFac:  req.Model.PermGroFac,
			BoroCnstArt: req.Model.BoroCnstArt,
		},
		Income: config.IncomeConfig{
			PermShkCount: req.Income.PermShkCount,
			TranShkCount: req.Income.TranShkCount,
			PermShkStd:   req.Income.PermShkStd,
			TranShkStd:   req.Income.TranShkStd,
			UnempPrb:     req.Income.UnempPrb,
			IncUnemp:     req.Income.IncUnemp,
		},
		Grid: config.GridConfig{
			Min:     req.Grid.Min,
			Max:     req.Grid.Max,
			Count:   req.Grid.Count,
			NestFac: req.Grid.NestFac,
		},
		Risky: config.RiskyConfig{
			Avg: req.Risky.Avg,
			Std: req.Risky.Std,
		},
		Solver: config.SolverConfig{
			Method:        req.Solver.Method,
			Periods:       req.Solver.Periods,
			Cubic:         req.Solver.Cubic,
			ValueFunction: req.Solver.ValueFunction,
			Extrapolate:   req.Solver.Extrapolate,
		},
	}

	if req.Preset != "" {
		p, ok := h.presets.Find(req.Preset)
		if !ok {
			return model.Scenario{}, fmt.Errorf("unknown preset %q", req.Preset)
		}
		cfg.Model = config.MergeModel(presetModel(p), cfg.Model)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return model.Scenario{}, err
	}
	return cfg.ToScenario()
}

func presetModel(p preset.Preset) config.ModelConfig {
	return config.ModelConfig{
		CRRA:        p.CRRA,
		DiscFac:     p.DiscFac,
		LivPrb:      p.LivPrb,
		Rfree:       p.Rfree,
		PermGroFac:  p.PermGroFac,
		BoroCnstArt: p.BoroCnstArt,
	}
}

func buildSolveResponse(id string, sc model.Scenario, sols []*model.Solution) models.SolveResponse {
	first := sols[0]
	summary := models.SolveSummary{
		Method:     string(first.Method),
		Periods:    len(sols) - 1,
		CRRA:       sc.Params.CRRA,
		DiscFac:    sc.Params.DiscFac,
		LivPrb:     sc.Params.LivPrb,
		Rfree:      sc.Params.Rfree,
		PermGroFac: sc.Params.PermGroFac,
		MNrmMin:    first.MNrmMin,
		HNrm:       first.HNrm,
		MPCMin:     first.MPCMin,
		MPCMax:     first.MPCMax,
	}
	if first.Cusp != nil {
		v := first.Cusp.MNrmCusp
		summary.MNrmCusp = &v
	}
	if first.StochasticR != nil {
		v := first.StochasticR.MPCMinStochastic
		summary.MPCMinStochastic = &v
	}

	periods := make([]models.PeriodSummary, len(sols))
	for i, sol := range sols {
		periods[i] = models.PeriodSummary{
			Period:  i,
			Method:  string(sol.Method),
			MNrmMin: sol.MNrmMin,
			HNrm:    sol.HNrm,
			MPCMin:  sol.MPCMin,
			MPCMax:  sol.MPCMax,
		}
	}

	return models.SolveResponse{
		ID:      id,
		Status:  "completed",
		Summary: summary,
		Periods: periods,
	}
}

// byMethodMNrmMin returns the first-period MNrmMin shared by the solved
// sequences. All methods solve the same scenario, so any entry serves.
func byMethodMNrmMin(byMethod map[model.Method][]*model.Solution) float64 {
	for _, sols := range byMethod {
		return sols[0].MNrmMin
	}
	return 0
}

func toPolicyRows(rows []analysis.PolicyRow) []models.PolicyRow {
	out := make([]models.PolicyRow, len(rows))
	for i, r := range rows {
		out[i] = models.PolicyRow{
			MNrm:       r.MNrm,
			CNrm:       r.CNrm,
			MPC:        r.MPC,
			ANrm:       r.ANrm,
			CPes:       optFloat(r.CPes),
			COpt:       optFloat(r.COpt),
			Omega:      optFloat(r.Omega),
			Chi:        optFloat(r.Chi),
			VNrm:       optFloat(r.VNrm),
			EulerError: r.EulerError,
		}
	}
	return out
}

// optFloat drops NaN markers so the JSON encoder never sees them.
func optFloat(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}
