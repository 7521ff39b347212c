package models

// SolveRequest is the request body for solving a consumption-saving
// scenario. Every section is optional: the model section merges field by
// field onto the baseline calibration (or onto the named preset), the
// other sections are taken whole when any of their fields is set.
type SolveRequest struct {
	Preset string `json:"preset,omitempty"`

	Model  ModelSpec  `json:"model,omitempty"`
	Income IncomeSpec `json:"income,omitempty"`
	Grid   GridSpec   `json:"grid,omitempty"`
	Risky  RiskySpec  `json:"risky,omitempty"`
	Solver SolverSpec `json:"solver,omitempty"`
}

// ModelSpec sets preferences and prices
type ModelSpec struct {
	CRRA        float64  `json:"crra,omitempty"`
	DiscFac     float64  `json:"disc_fac,omitempty"`
	LivPrb      float64  `json:"liv_prb,omitempty"`
	Rfree       float64  `json:"rfree,omitempty"`
	PermGroFac  float64  `json:"perm_gro_fac,omitempty"`
	BoroCnstArt *float64 `json:"boro_cnst_art,omitempty"`
}

// IncomeSpec sets the discretized income process
type IncomeSpec struct {
	PermShkCount int     `json:"perm_shk_count,omitempty"`
	TranShkCount int     `json:"tran_shk_count,omitempty"`
	PermShkStd   float64 `json:"perm_shk_std,omitempty"`
	TranShkStd   float64 `json:"tran_shk_std,omitempty"`
	UnempPrb     float64 `json:"unemp_prb,omitempty"`
	IncUnemp     float64 `json:"inc_unemp,omitempty"`
}

// GridSpec sets the post-decision asset grid
type GridSpec struct {
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Count   int     `json:"count,omitempty"`
	NestFac int     `json:"nest_fac,omitempty"`
}

// RiskySpec sets the risky-return distribution used by the
// stochastic-return method
type RiskySpec struct {
	Avg float64 `json:"avg,omitempty"`
	Std float64 `json:"std,omitempty"`
}

// SolverSpec selects the method and its options
type SolverSpec struct {
	Method        string `json:"method,omitempty"`  // default: "MOM"
	Periods       int    `json:"periods,omitempty"` // default: 1
	Cubic         bool   `json:"cubic,omitempty"`
	ValueFunction bool   `json:"value_function,omitempty"`
	Extrapolate   bool   `json:"extrapolate,omitempty"`
}

// CompareRequest solves one scenario under several methods and ranks the
// resulting rules by Euler-equation accuracy on a shared evaluation grid.
type CompareRequest struct {
	Scenario SolveRequest `json:"scenario,omitempty"`
	Methods  []string     `json:"methods,omitempty"` // default: every method
	Eval     EvalSpec     `json:"eval,omitempty"`
}

// EvalSpec selects the evaluation grid diagnostics run on. Defaults to
// 100 uniform points on [MNrmMin+1, MNrmMin+20].
type EvalSpec struct {
	MMin   float64 `json:"m_min,omitempty"`
	MMax   float64 `json:"m_max,omitempty"`
	Points int     `json:"points,omitempty"`
}

// PolicyRequest selects the period and evaluation grid for a tabulated
// consumption rule
type PolicyRequest struct {
	Period int     `form:"period"`
	MMin   float64 `form:"m_min"`
	MMax   float64 `form:"m_max"`
	Points int     `form:"points"` // default: 50
}
