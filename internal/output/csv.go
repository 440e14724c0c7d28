package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/nominamx/nomina/internal/domain"
)

// CSVFormatter implements the one-row-per-employee summary CSV output.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(run *domain.PayrollRunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Employee", "DaysWorked", "DaysAbsent", "SDI", "TotalEarnings", "IMSSEmployee", "ISRWithheld", "TotalDeductions", "Net"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	results := append([]domain.PayrollResult(nil), run.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].EmployeeName < results[j].EmployeeName })

	for _, r := range results {
		row := []string{
			r.EmployeeName,
			strconv.Itoa(r.Details.DaysWorked),
			strconv.Itoa(r.Details.DaysAbsent),
			r.Details.SDI.StringFixed(2),
			r.Totals.Earnings.StringFixed(2),
			r.Details.IMSS.Totals.Employee.StringFixed(2),
			r.Details.ISR.WithheldISR.StringFixed(2),
			r.Totals.Deductions.StringFixed(2),
			r.Totals.Net.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
