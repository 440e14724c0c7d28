package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/domain"
)

// ConsoleFormatter renders a human-readable payslip summary per employee.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(run *domain.PayrollRunResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Payroll run %s\n", run.RunID)
	fmt.Fprintf(buf, "Company: %s\n", run.Company.Name)
	fmt.Fprintf(buf, "Period:  %s (%d days)\n\n", run.Period.Start.Format("2006-01-02"), run.Period.Days)

	for _, r := range run.Results {
		fmt.Fprintf(buf, "=== %s ===\n", r.EmployeeName)
		fmt.Fprintf(buf, "  Days worked: %d   Days absent: %d   SDI: %s\n",
			r.Details.DaysWorked, r.Details.DaysAbsent, r.Details.SDI.StringFixed(2))

		fmt.Fprintf(buf, "  Earnings:\n")
		writeConcepts(buf, r.Earnings)
		fmt.Fprintf(buf, "  Deductions:\n")
		writeConcepts(buf, r.Deductions)

		fmt.Fprintf(buf, "  ISR: base %s, computed %s, subsidy %s, withheld %s\n",
			r.Details.ISR.TaxableBase.StringFixed(2),
			r.Details.ISR.ComputedISR.StringFixed(2),
			r.Details.ISR.Subsidy.StringFixed(2),
			r.Details.ISR.WithheldISR.StringFixed(2))
		fmt.Fprintf(buf, "  IMSS: employer %s, employee %s\n",
			r.Details.IMSS.Totals.Employer.StringFixed(2),
			r.Details.IMSS.Totals.Employee.StringFixed(2))

		fmt.Fprintf(buf, "  TOTAL earnings %s, deductions %s, NET %s\n\n",
			r.Totals.Earnings.StringFixed(2),
			r.Totals.Deductions.StringFixed(2),
			r.Totals.Net.StringFixed(2))
	}

	fmt.Fprintf(buf, "Total net payout:  %s\n", run.TotalNet.StringFixed(2))
	fmt.Fprintf(buf, "Total employer cost: %s\n", run.TotalCost.StringFixed(2))
	return buf.Bytes(), nil
}

func writeConcepts(buf *bytes.Buffer, concepts map[string]decimal.Decimal) {
	names := make([]string, 0, len(concepts))
	for name := range concepts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(buf, "    %-22s %12s\n", name, concepts[name].StringFixed(2))
	}
}
