package model

import (
	"fmt"
	"strings"
)

// Method identifies which one-period solver produced a solution.
// Keep these values stable; they are intended for CSV and API output.
type Method string

const (
	MethodEGM       Method = "EGM"
	MethodMoM       Method = "MOM"
	MethodMoMCusp   Method = "MOM_CUSP"
	MethodMoMStochR Method = "MOM_STOCHASTIC_R"
	MethodTerminal  Method = "TERMINAL"
)

// Methods lists the selectable solvers in presentation order. The terminal
// solution is constructed, never selected.
func Methods() []Method {
	return []Method{MethodEGM, MethodMoM, MethodMoMCusp, MethodMoMStochR}
}

// ParseMethod resolves a user-supplied method name, case-insensitively and
// accepting dashes for underscores.
func ParseMethod(s string) (Method, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, m := range Methods() {
		if norm == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown method %q (want one of EGM, MOM, MOM_CUSP, MOM_STOCHASTIC_R)", s)
}
