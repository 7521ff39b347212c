package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"consumption-solver/internal/api/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	solve := NewSolveHandler(nil, nil)
	presets := NewPresetsHandler(nil)

	v1 := r.Group("/api/v1")
	v1.POST("/solve", solve.RunSolve)
	v1.POST("/solve/compare", solve.CompareMethods)
	v1.GET("/solutions/:id", solve.GetSolution)
	v1.GET("/solutions/:id/policy", solve.GetPolicy)
	v1.GET("/methods", ListMethods)
	v1.GET("/presets", presets.ListPresets)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var e models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestRunSolveDefaults(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "completed", resp.Status)

	require.Equal(t, "MOM", resp.Summary.Method)
	require.Equal(t, 1, resp.Summary.Periods)
	require.Equal(t, 2.0, resp.Summary.CRRA)
	require.Equal(t, 0.96, resp.Summary.DiscFac)
	require.Equal(t, 0.98, resp.Summary.LivPrb)
	require.Equal(t, 1.03, resp.Summary.Rfree)
	require.Equal(t, 1.01, resp.Summary.PermGroFac)

	require.Equal(t, 0.0, resp.Summary.MNrmMin)
	require.InDelta(t, 0.980582524271845, resp.Summary.HNrm, 1e-12)
	require.InEpsilon(t, 0.511321002804608, resp.Summary.MPCMin, 1e-9)
	require.Equal(t, 1.0, resp.Summary.MPCMax)
	require.Nil(t, resp.Summary.MNrmCusp)
	require.Nil(t, resp.Summary.MPCMinStochastic)

	require.Len(t, resp.Periods, 2)
	require.Equal(t, "MOM", resp.Periods[0].Method)
	require.Equal(t, "TERMINAL", resp.Periods[1].Method)
	require.Equal(t, 1.0, resp.Periods[1].MPCMin)
	require.Equal(t, 1.0, resp.Periods[1].MPCMax)
	require.Equal(t, 0.0, resp.Periods[1].HNrm)
}

func TestRunSolveWithPresetAndOverride(t *testing.T) {
	r := newTestRouter()

	body := `{"preset":"impatient","model":{"rfree":1.04},"solver":{"method":"egm","periods":2}}`
	w := do(t, r, http.MethodPost, "/api/v1/solve", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "EGM", resp.Summary.Method)
	require.Equal(t, 2, resp.Summary.Periods)
	require.Equal(t, 0.90, resp.Summary.DiscFac, "preset value should survive the merge")
	require.Equal(t, 1.04, resp.Summary.Rfree, "explicit field should override the preset")

	require.Len(t, resp.Periods, 3)
	require.Equal(t, "EGM", resp.Periods[0].Method)
	require.Equal(t, "EGM", resp.Periods[1].Method)
	require.Equal(t, "TERMINAL", resp.Periods[2].Method)
}

func TestRunSolveUnknownPreset(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve", `{"preset":"optimist"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	require.Equal(t, "INVALID_SCENARIO", e.Error.Code)
	require.Contains(t, e.Error.Message, "unknown preset")
}

func TestRunSolveInvalidScenario(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve", `{"model":{"crra":1.0}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	require.Equal(t, "INVALID_SCENARIO", e.Error.Code)
	require.Contains(t, e.Error.Message, "CRRA")
}

func TestRunSolveBadJSON(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve", `{"model":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVALID_REQUEST", decodeError(t, w).Error.Code)
}

func TestRunSolvePatienceViolation(t *testing.T) {
	r := newTestRouter()

	// Rfree below growth passes validation but leaves no finite solution.
	w := do(t, r, http.MethodPost, "/api/v1/solve", `{"model":{"rfree":0.9}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	require.Equal(t, "SOLVE_ERROR", e.Error.Code)
	require.Contains(t, e.Error.Message, "patience factor")
}

func TestGetSolutionRoundTrip(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var solved models.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &solved))

	w = do(t, r, http.MethodGet, "/api/v1/solutions/"+solved.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, solved, got)

	w = do(t, r, http.MethodGet, "/api/v1/solutions/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", decodeError(t, w).Error.Code)

	w = do(t, r, http.MethodGet, "/api/v1/solutions/nope/policy", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPolicyDefaults(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve", `{"solver":{"value_function":true}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var solved models.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &solved))

	w = do(t, r, http.MethodGet, "/api/v1/solutions/"+solved.ID+"/policy", "")
	require.Equal(t, http.StatusOK, w.Code)
	var pol models.PolicyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pol))
	require.Equal(t, solved.ID, pol.ID)
	require.Equal(t, 0, pol.Period)
	require.Equal(t, "MOM", pol.Method)
	require.Len(t, pol.Rows, 50)

	// Default grid: one step above the constraint up to m = MNrmMin+20.
	require.Equal(t, 0.4, pol.Rows[0].MNrm)
	require.Equal(t, 20.0, pol.Rows[49].MNrm)
	for i, row := range pol.Rows {
		if i > 0 {
			require.Greater(t, row.MNrm, pol.Rows[i-1].MNrm)
		}
		require.Greater(t, row.CNrm, 0.0, "row %d", i)
		require.NotNil(t, row.CPes, "row %d", i)
		require.NotNil(t, row.COpt, "row %d", i)
		require.NotNil(t, row.Omega, "row %d", i)
		require.NotNil(t, row.Chi, "row %d", i)
		require.NotNil(t, row.VNrm, "row %d", i)
		require.GreaterOrEqual(t, row.EulerError, 0.0, "row %d", i)
	}

	w = do(t, r, http.MethodGet, "/api/v1/solutions/"+solved.ID+"/policy?period=5", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVALID_PERIOD", decodeError(t, w).Error.Code)

	w = do(t, r, http.MethodGet, "/api/v1/solutions/"+solved.ID+"/policy?points=7&m_min=1&m_max=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pol))
	require.Len(t, pol.Rows, 7)
	require.Equal(t, 1.0, pol.Rows[0].MNrm)
	require.Equal(t, 5.0, pol.Rows[6].MNrm)
}

func TestCompareMethodsRanksAll(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve/compare", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 4)

	seen := make(map[string]bool)
	for i, d := range resp.Comparison {
		require.Equal(t, i+1, d.Rank)
		require.Equal(t, 100, d.Count)
		require.GreaterOrEqual(t, d.MaxEulerError, 0.0)
		if i > 0 {
			require.GreaterOrEqual(t, d.MaxEulerError, resp.Comparison[i-1].MaxEulerError)
		}
		seen[d.Method] = true
	}
	require.Len(t, seen, 4)
}

func TestCompareMethodsExplicitList(t *testing.T) {
	r := newTestRouter()

	body := `{"methods":["mom","egm"],"eval":{"m_min":2,"m_max":10,"points":40}}`
	w := do(t, r, http.MethodPost, "/api/v1/solve/compare", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 2)

	seen := make(map[string]bool)
	for _, d := range resp.Comparison {
		require.Equal(t, 40, d.Count)
		seen[d.Method] = true
	}
	require.True(t, seen["MOM"])
	require.True(t, seen["EGM"])
}

func TestCompareMethodsBadMethod(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve/compare", `{"methods":["newton"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVALID_METHOD", decodeError(t, w).Error.Code)
}

func TestCompareMethodsAllFail(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/solve/compare", `{"scenario":{"model":{"rfree":0.9}}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	require.Equal(t, "SOLVE_ERROR", e.Error.Code)
	require.Contains(t, e.Error.Message, "patience factor")
}

func TestListMethods(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/api/v1/methods", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Methods []models.MethodInfo `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Methods, 4)

	names := make([]string, len(resp.Methods))
	for i, m := range resp.Methods {
		names[i] = m.Name
		require.NotEmpty(t, m.Description)
	}
	require.Equal(t, []string{"EGM", "MOM", "MOM_CUSP", "MOM_STOCHASTIC_R"}, names)
}

func TestListPresets(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Presets []models.PresetInfo `json:"presets"`
		Count   int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, len(resp.Presets), resp.Count)

	byName := make(map[string]models.PresetInfo, len(resp.Presets))
	for _, p := range resp.Presets {
		byName[p.Name] = p
	}
	for _, want := range []string{"baseline", "patient", "impatient", "unconstrained"} {
		require.Contains(t, byName, want)
	}
	require.Equal(t, 0.90, byName["impatient"].DiscFac)
	require.NotNil(t, byName["baseline"].BoroCnstArt)
	require.Nil(t, byName["unconstrained"].BoroCnstArt)
}
