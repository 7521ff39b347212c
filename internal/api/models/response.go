package models

// SolveResponse returns the scalar summary of a completed solve plus a
// handle for retrieving tabulated policies later.
type SolveResponse struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Summary SolveSummary    `json:"summary"`
	Periods []PeriodSummary `json:"periods"`
}

// SolveSummary describes the scenario and the first decision period of
// the solved horizon.
type SolveSummary struct {
	Method     string  `json:"method"`
	Periods    int     `json:"periods"`
	CRRA       float64 `json:"crra"`
	DiscFac    float64 `json:"disc_fac"`
	LivPrb     float64 `json:"liv_prb"`
	Rfree      float64 `json:"rfree"`
	PermGroFac float64 `json:"perm_gro_fac"`

	MNrmMin float64 `json:"m_nrm_min"`
	HNrm    float64 `json:"h_nrm"`
	MPCMin  float64 `json:"mpc_min"`
	MPCMax  float64 `json:"mpc_max"`

	MNrmCusp         *float64 `json:"m_nrm_cusp,omitempty"`
	MPCMinStochastic *float64 `json:"mpc_min_stochastic,omitempty"`
}

// PeriodSummary is one backward-induction step; the last entry is the
// terminal consume-everything rule.
type PeriodSummary struct {
	Period  int     `json:"period"`
	Method  string  `json:"method"`
	MNrmMin float64 `json:"m_nrm_min"`
	HNrm    float64 `json:"h_nrm"`
	MPCMin  float64 `json:"mpc_min"`
	MPCMax  float64 `json:"mpc_max"`
}

// PolicyResponse tabulates one period's consumption rule.
type PolicyResponse struct {
	ID     string      `json:"id"`
	Period int         `json:"period"`
	Method string      `json:"method"`
	Rows   []PolicyRow `json:"rows"`
}

// PolicyRow is one evaluation gridpoint. Optional fields are omitted for
// rules that do not carry them.
type PolicyRow struct {
	MNrm       float64  `json:"m_nrm"`
	CNrm       float64  `json:"c_nrm"`
	MPC        float64  `json:"mpc"`
	ANrm       float64  `json:"a_nrm"`
	CPes       *float64 `json:"c_pessimist,omitempty"`
	COpt       *float64 `json:"c_optimist,omitempty"`
	Omega      *float64 `json:"omega,omitempty"`
	Chi        *float64 `json:"chi,omitempty"`
	VNrm       *float64 `json:"v_nrm,omitempty"`
	EulerError float64  `json:"euler_error"`
}

// CompareResponse ranks methods by worst-case Euler error, most accurate
// first.
type CompareResponse struct {
	Comparison []MethodDiagnostics `json:"comparison"`
}

// MethodDiagnostics contains accuracy results for one ranked method
type MethodDiagnostics struct {
	Rank             int     `json:"rank"`
	Method           string  `json:"method"`
	Count            int     `json:"count"`
	MaxEulerError    float64 `json:"max_euler_error"`
	MeanEulerError   float64 `json:"mean_euler_error"`
	P95EulerError    float64 `json:"p95_euler_error"`
	BoundViolations  int     `json:"bound_violations"`
	OmegaNonmonotone int     `json:"omega_nonmonotone"`
	MinLowerGap      float64 `json:"min_lower_gap"`
	MinUpperGap      float64 `json:"min_upper_gap"`
}

// MethodInfo describes one selectable solver
type MethodInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PresetInfo describes one named calibration
type PresetInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CRRA        float64  `json:"crra"`
	DiscFac     float64  `json:"disc_fac"`
	LivPrb      float64  `json:"liv_prb"`
	Rfree       float64  `json:"rfree"`
	PermGroFac  float64  `json:"perm_gro_fac"`
	BoroCnstArt *float64 `json:"boro_cnst_art,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
