package analysis

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
)

func WritePolicyCSV(path string, rows []PolicyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"m_nrm",
		"c_nrm",
		"mpc",
		"a_nrm",
		"c_pessimist",
		"c_optimist",
		"omega",
		"chi",
		"v_nrm",
		"euler_error",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			fmtFloat(r.MNrm),
			fmtFloat(r.CNrm),
			fmtFloat(r.MPC),
			fmtFloat(r.ANrm),
			fmtFloat(r.CPes),
			fmtFloat(r.COpt),
			fmtFloat(r.Omega),
			fmtFloat(r.Chi),
			fmtFloat(r.VNrm),
			fmtSci(r.EulerError),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// fmtFloat prints levels at fixed precision; NaN marks fields a rule does
// not carry and prints empty.
func fmtFloat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// fmtSci keeps small residuals visible.
func fmtSci(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'e', 3, 64)
}
