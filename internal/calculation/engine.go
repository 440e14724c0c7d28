package calculation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/domain"
)

var (
	workdayHours  = decimal.NewFromInt(8)
	doubleWeekCap = decimal.NewFromInt(9) // double-rate hours per record
	doubleRate    = decimal.NewFromInt(2)
	tripleRate    = decimal.NewFromInt(3)
	sundayPct     = decimal.NewFromInt(25)
	half          = decimal.NewFromFloat(0.5)
	fiveUMA       = decimal.NewFromInt(5)
)

// PayrollEngine orchestrates a biweekly payroll run: attendance
// resolution, gross earnings, statutory and contractual deductions, and
// net pay. It is stateless; runs for different employees are independent
// and may execute concurrently.
type PayrollEngine struct {
	Regulatory *domain.RegulatoryConfig
	SDICalc    *SDICalculator
	IMSSCalc   *IMSSCalculator
	ISRCalc    *ISRCalculator
	Logger     Logger
	Debug      bool
}

// NewPayrollEngine creates an engine bound to a law-year config and a
// company's occupational-risk premium.
func NewPayrollEngine(reg *domain.RegulatoryConfig, riskPremiumPct decimal.Decimal) *PayrollEngine {
	return &PayrollEngine{
		Regulatory: reg,
		SDICalc:    NewSDICalculator(reg),
		IMSSCalc:   NewIMSSCalculator(reg, riskPremiumPct),
		ISRCalc:    NewISRCalculator(reg),
		Logger:     NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (pe *PayrollEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	pe.Logger = l
}

func (pe *PayrollEngine) validateInputs(employee *domain.Employee, period domain.PayPeriod, attendance []domain.AttendanceRecord, incidents []domain.IncidentRecord) error {
	if employee.Name == "" {
		return domain.ErrMissingEmployeeName
	}
	if employee.DailyWage.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("employee %s: %w", employee.Name, domain.ErrNonPositiveDailyWage)
	}
	if period.Days <= 0 {
		return domain.ErrInvalidPeriod
	}
	for i, r := range attendance {
		if r.OvertimeHours.IsNegative() {
			return fmt.Errorf("attendance record %d: %w", i, domain.ErrNegativeOvertime)
		}
	}
	for i, inc := range incidents {
		if !inc.Type.Valid() {
			return fmt.Errorf("incident record %d (%q): %w", i, inc.Type, domain.ErrInvalidIncidentType)
		}
		if inc.Days < 0 {
			return fmt.Errorf("incident record %d: %w", i, domain.ErrNonPositiveDays)
		}
	}
	return nil
}

// RunPayroll computes one employee's payroll for a period. The result is
// fully populated and immutable once returned; validation failures
// surface before any computation, never as a partial result.
func (pe *PayrollEngine) RunPayroll(employee *domain.Employee, period domain.PayPeriod, attendance []domain.AttendanceRecord, incidents []domain.IncidentRecord, loans []domain.Loan) (*domain.PayrollResult, error) {
	if err := pe.validateInputs(employee, period, attendance, incidents); err != nil {
		return nil, err
	}

	// Attendance resolution: paid incident days (leave, sick) count
	// toward days worked; unpaid absences accrue a deduction instead.
	paidIncidentDays, daysAbsent := 0, 0
	for _, inc := range incidents {
		if inc.Type.Paid() {
			paidIncidentDays += inc.Days
		} else {
			daysAbsent += inc.Days
		}
	}
	daysWorked := len(attendance) + paidIncidentDays
	if daysWorked > period.Days {
		daysWorked = period.Days
	}

	// Overtime split and Sunday premium, accumulated per attendance
	// record. The 9-hour double-rate threshold is applied per record,
	// not per calendar week; see DESIGN.md for the discrepancy note.
	hourRate := employee.DailyWage.Div(workdayHours)
	overtimeDouble, overtimeTriple, sundayPremium := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range attendance {
		if r.OvertimeHours.GreaterThan(decimal.Zero) {
			doubleHours := decimal.Min(r.OvertimeHours, doubleWeekCap)
			overtimeDouble = overtimeDouble.Add(hourRate.Mul(doubleRate).Mul(doubleHours))
			if extra := r.OvertimeHours.Sub(doubleWeekCap); extra.GreaterThan(decimal.Zero) {
				overtimeTriple = overtimeTriple.Add(hourRate.Mul(tripleRate).Mul(extra))
			}
		}
		if r.Date.Weekday() == time.Sunday {
			sundayPremium = sundayPremium.Add(applyPct(employee.DailyWage, sundayPct))
		}
	}

	// Gross earnings, every leaf rounded before summing.
	earnings := map[string]decimal.Decimal{
		domain.ConceptBaseSalary: round2(employee.DailyWage.Mul(decimal.NewFromInt(int64(daysWorked)))),
	}
	if overtimeDouble.GreaterThan(decimal.Zero) {
		earnings[domain.ConceptOvertimeDouble] = round2(overtimeDouble)
	}
	if overtimeTriple.GreaterThan(decimal.Zero) {
		earnings[domain.ConceptOvertimeTriple] = round2(overtimeTriple)
	}
	if sundayPremium.GreaterThan(decimal.Zero) {
		earnings[domain.ConceptSundayPremium] = round2(sundayPremium)
	}
	if employee.ProductivityBonus.GreaterThan(decimal.Zero) {
		earnings[domain.ConceptBonus] = round2(employee.ProductivityBonus)
	}

	grossTotal := decimal.Zero
	for _, amount := range earnings {
		grossTotal = grossTotal.Add(amount)
	}

	taxableBase := pe.taxableBase(earnings, period)

	pe.Logger.Debugf("payroll %s: daysWorked=%d daysAbsent=%d gross=%s taxable=%s",
		employee.Name, daysWorked, daysAbsent, grossTotal.StringFixed(2), taxableBase.StringFixed(2))

	// Statutory deductions.
	sdi, err := pe.SDICalc.DeriveSDI(employee.WageParams())
	if err != nil {
		return nil, fmt.Errorf("employee %s: derive SDI: %w", employee.Name, err)
	}
	imss, err := pe.IMSSCalc.CalculateQuotas(sdi, daysWorked, true)
	if err != nil {
		return nil, fmt.Errorf("employee %s: IMSS quotas: %w", employee.Name, err)
	}
	isr, err := pe.ISRCalc.CalculateWithholding(taxableBase, true)
	if err != nil {
		return nil, fmt.Errorf("employee %s: ISR withholding: %w", employee.Name, err)
	}

	deductions := map[string]decimal.Decimal{}
	if imss.Totals.Employee.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptIMSS] = imss.Totals.Employee
	}
	if isr.WithheldISR.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptISR] = isr.WithheldISR
	}

	// Contractual deductions.
	loanTotal := decimal.Zero
	for _, loan := range loans {
		loanTotal = loanTotal.Add(round2(loan.Installment))
	}
	if loanTotal.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptLoans] = loanTotal
	}
	if hc := pe.housingCredit(employee, grossTotal, daysWorked); hc.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptHousingCredit] = hc
	}
	if al := alimonyDeduction(employee, grossTotal); al.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptAlimony] = al
	}
	if employee.UnionDues.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptUnionDues] = round2(employee.UnionDues)
	}
	if employee.OtherDeductions.GreaterThan(decimal.Zero) {
		deductions[domain.ConceptOther] = round2(employee.OtherDeductions)
	}
	if daysAbsent > 0 {
		deductions[domain.ConceptAbsences] = round2(employee.DailyWage.Mul(decimal.NewFromInt(int64(daysAbsent))))
	}

	deductionTotal := decimal.Zero
	for _, amount := range deductions {
		deductionTotal = deductionTotal.Add(amount)
	}

	net := grossTotal.Sub(deductionTotal)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return &domain.PayrollResult{
		EmployeeName: employee.Name,
		Earnings:     earnings,
		Deductions:   deductions,
		Totals: domain.PayrollTotals{
			Earnings:   grossTotal,
			Deductions: deductionTotal,
			Net:        net,
		},
		Details: domain.PayrollDetails{
			DaysWorked:  daysWorked,
			DaysAbsent:  daysAbsent,
			SDI:         sdi,
			TaxableBase: taxableBase,
			IMSS:        *imss,
			ISR:         *isr,
		},
	}, nil
}

// taxableBase applies the category-specific partial exemptions: Sunday
// premium exempt up to one UMA per period day, overtime 50% exempt up to
// five UMA per week in the period. Base salary and bonuses are fully
// taxable.
func (pe *PayrollEngine) taxableBase(earnings map[string]decimal.Decimal, period domain.PayPeriod) decimal.Decimal {
	uma := pe.Regulatory.UMADaily
	exempt := map[string]decimal.Decimal{}

	if premium, ok := earnings[domain.ConceptSundayPremium]; ok {
		cap := uma.Mul(decimal.NewFromInt(int64(period.Days)))
		exempt[domain.ConceptSundayPremium] = decimal.Min(premium, cap)
	}

	overtime := earnings[domain.ConceptOvertimeDouble].Add(earnings[domain.ConceptOvertimeTriple])
	if overtime.GreaterThan(decimal.Zero) {
		cap := fiveUMA.Mul(uma).Mul(decimal.NewFromInt(int64(period.Weeks())))
		exemptOT := decimal.Min(overtime.Mul(half), cap)
		// Allocate the overtime exemption to the double-rate concept
		// first, the remainder to triple.
		double := earnings[domain.ConceptOvertimeDouble]
		exempt[domain.ConceptOvertimeDouble] = decimal.Min(exemptOT, double)
		exempt[domain.ConceptOvertimeTriple] = exemptOT.Sub(exempt[domain.ConceptOvertimeDouble])
	}

	return ComputeTaxableBase(earnings, exempt)
}

// housingCredit resolves the three mutually exclusive INFONAVIT discount
// modes: flat amount, percentage of gross, or a multiple of the daily
// minimum wage per day worked.
func (pe *PayrollEngine) housingCredit(employee *domain.Employee, gross decimal.Decimal, daysWorked int) decimal.Decimal {
	hc := employee.HousingCredit
	if hc == nil {
		return decimal.Zero
	}
	switch hc.Mode {
	case domain.HousingCreditFixed:
		return round2(hc.Value)
	case domain.HousingCreditPercentage:
		return round2(applyPct(gross, hc.Value))
	case domain.HousingCreditVSM:
		return round2(hc.Value.Mul(pe.Regulatory.MinimumWage).Mul(decimal.NewFromInt(int64(daysWorked))))
	}
	return decimal.Zero
}

func alimonyDeduction(employee *domain.Employee, gross decimal.Decimal) decimal.Decimal {
	al := employee.Alimony
	if al == nil {
		return decimal.Zero
	}
	switch al.Mode {
	case domain.AlimonyPercentage:
		return round2(applyPct(gross, al.Value))
	case domain.AlimonyFixed:
		return round2(al.Value)
	}
	return decimal.Zero
}

// RunAll executes the payroll run for every employee in the input and
// aggregates the company totals. Employee failures abort the run;
// payroll is all-or-nothing per company and period.
func (pe *PayrollEngine) RunAll(input *domain.PayrollInput) (*domain.PayrollRunResult, error) {
	if input.Period.Days <= 0 {
		return nil, domain.ErrInvalidPeriod
	}

	run := &domain.PayrollRunResult{
		RunID:   uuid.NewString(),
		Company: input.Company,
		Period:  input.Period,
		Results: make([]domain.PayrollResult, 0, len(input.Employees)),
	}

	for i := range input.Employees {
		in := &input.Employees[i]
		result, err := pe.RunPayroll(&in.Employee, input.Period, in.Attendance, in.Incidents, in.Employee.Loans)
		if err != nil {
			return nil, fmt.Errorf("payroll run for %q: %w", in.Employee.Name, err)
		}
		run.Results = append(run.Results, *result)
		run.TotalNet = run.TotalNet.Add(result.Totals.Net)
		run.TotalCost = run.TotalCost.Add(result.Totals.Earnings).Add(result.Details.IMSS.Totals.Employer)
	}

	pe.Logger.Infof("payroll run %s: %d employees, total net %s",
		run.RunID, len(run.Results), run.TotalNet.StringFixed(2))
	return run, nil
}
