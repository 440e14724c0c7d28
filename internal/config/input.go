package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nominamx/nomina/internal/domain"
)

// InputParser handles parsing of input configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRegulatoryFromFile loads and validates a law-year configuration
// from a YAML file. Table defects (gaps, overlaps, missing rates) are
// diagnosed here, never inside a calculation.
func (ip *InputParser) LoadRegulatoryFromFile(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var reg domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRegulatory(&reg); err != nil {
		return nil, fmt.Errorf("regulatory configuration validation failed: %w", err)
	}
	return &reg, nil
}

// LoadPayrollInputFromFile loads and validates a payroll run input
// (company, period, employees) from a YAML file.
func (ip *InputParser) LoadPayrollInputFromFile(filename string) (*domain.PayrollInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.PayrollInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePayrollInput(&input); err != nil {
		return nil, fmt.Errorf("payroll input validation failed: %w", err)
	}
	return &input, nil
}

// ValidateRegulatory checks a law-year configuration for internal
// consistency: positive UMA and cap, non-negative rates, and contiguous,
// exhaustive bracket tables.
func (ip *InputParser) ValidateRegulatory(reg *domain.RegulatoryConfig) error {
	if reg.UMADaily.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveUMA
	}
	if reg.SDICapMultiple.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveCap
	}
	if reg.MinimumWage.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveMinimumWage
	}
	if err := validateRates(&reg.IMSSRates); err != nil {
		return err
	}
	if err := validateISRBrackets(reg.ISRBrackets); err != nil {
		return fmt.Errorf("ISR bracket table: %w", err)
	}
	if err := validateSubsidyBrackets(reg.SubsidyBrackets); err != nil {
		return fmt.Errorf("subsidy table: %w", err)
	}
	return nil
}

func validateRates(rates *domain.IMSSRates) error {
	named := map[string]decimal.Decimal{
		"fixed_quota_pct":              rates.FixedQuotaPct,
		"excess_employer_pct":          rates.ExcessEmployerPct,
		"excess_employee_pct":          rates.ExcessEmployeePct,
		"cash_benefits_employer_pct":   rates.CashBenefitsEmployerPct,
		"cash_benefits_employee_pct":   rates.CashBenefitsEmployeePct,
		"pensioner_care_employer_pct":  rates.PensionerCareEmployerPct,
		"pensioner_care_employee_pct":  rates.PensionerCareEmployeePct,
		"disability_life_employer_pct": rates.DisabilityLifeEmployerPct,
		"disability_life_employee_pct": rates.DisabilityLifeEmployeePct,
		"retirement_employer_pct":      rates.RetirementEmployerPct,
		"unemployment_employer_pct":    rates.UnemploymentEmployerPct,
		"unemployment_employee_pct":    rates.UnemploymentEmployeePct,
		"daycare_employer_pct":         rates.DaycareEmployerPct,
		"default_risk_premium_pct":     rates.DefaultRiskPremiumPct,
	}
	for name, rate := range named {
		if rate.IsNegative() {
			return fmt.Errorf("%s: %w", name, domain.ErrNegativeRate)
		}
	}
	return nil
}

// centStep is the statutory 0.01 gap between a row's upper bound and the
// next row's lower bound.
var centStep = decimal.NewFromFloat(0.01)

func validateISRBrackets(brackets []domain.ISRBracket) error {
	if len(brackets) == 0 {
		return domain.ErrBracketTableEmpty
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last {
			if b.UpperBound != nil {
				return fmt.Errorf("row %d: %w", i, domain.ErrBracketTableNotOpen)
			}
			continue
		}
		if b.UpperBound == nil {
			return fmt.Errorf("row %d: only the last row may be open-ended: %w", i, domain.ErrBracketTableGap)
		}
		if b.UpperBound.LessThan(b.LowerBound) {
			return fmt.Errorf("row %d: upper bound below lower bound: %w", i, domain.ErrBracketTableGap)
		}
		next := brackets[i+1]
		if !next.LowerBound.Equal(b.UpperBound.Add(centStep)) {
			return fmt.Errorf("row %d/%d: bounds not contiguous: %w", i, i+1, domain.ErrBracketTableGap)
		}
	}
	return nil
}

func validateSubsidyBrackets(brackets []domain.SubsidyBracket) error {
	if len(brackets) == 0 {
		return domain.ErrBracketTableEmpty
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last {
			if b.To != nil {
				return fmt.Errorf("row %d: %w", i, domain.ErrBracketTableNotOpen)
			}
			continue
		}
		if b.To == nil {
			return fmt.Errorf("row %d: only the last row may be open-ended: %w", i, domain.ErrBracketTableGap)
		}
		if b.To.LessThan(b.From) {
			return fmt.Errorf("row %d: upper bound below lower bound: %w", i, domain.ErrBracketTableGap)
		}
		next := brackets[i+1]
		if !next.From.Equal(b.To.Add(centStep)) {
			return fmt.Errorf("row %d/%d: bounds not contiguous: %w", i, i+1, domain.ErrBracketTableGap)
		}
	}
	return nil
}

// ValidatePayrollInput checks the run input before any computation.
func (ip *InputParser) ValidatePayrollInput(input *domain.PayrollInput) error {
	if input.Company.Name == "" {
		return fmt.Errorf("company name is required")
	}
	if input.Company.RiskPremiumPct.IsNegative() {
		return domain.ErrNegativeRiskPremium
	}
	if input.Period.Days <= 0 {
		return domain.ErrInvalidPeriod
	}
	if len(input.Employees) == 0 {
		return fmt.Errorf("no employees provided")
	}
	for i := range input.Employees {
		if err := ip.validateEmployeeInput(&input.Employees[i]); err != nil {
			return fmt.Errorf("employee %d (%s): %w", i, input.Employees[i].Employee.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateEmployeeInput(in *domain.EmployeePeriodInput) error {
	e := &in.Employee
	if e.Name == "" {
		return domain.ErrMissingEmployeeName
	}
	if e.DailyWage.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveDailyWage
	}
	if e.ProductivityBonus.IsNegative() {
		return fmt.Errorf("productivity bonus cannot be negative")
	}
	if e.UnionDues.IsNegative() || e.OtherDeductions.IsNegative() {
		return fmt.Errorf("fixed deductions cannot be negative")
	}
	for i, loan := range e.Loans {
		if loan.Installment.IsNegative() {
			return fmt.Errorf("loan %d: installment cannot be negative", i)
		}
	}
	if hc := e.HousingCredit; hc != nil {
		switch hc.Mode {
		case domain.HousingCreditFixed, domain.HousingCreditPercentage, domain.HousingCreditVSM:
		default:
			return fmt.Errorf("housing credit mode %q is not one of fixed, percentage, vsm", hc.Mode)
		}
		if hc.Value.IsNegative() {
			return fmt.Errorf("housing credit value cannot be negative")
		}
	}
	if al := e.Alimony; al != nil {
		switch al.Mode {
		case domain.AlimonyPercentage, domain.AlimonyFixed:
		default:
			return fmt.Errorf("alimony mode %q is not one of percentage, fixed", al.Mode)
		}
		if al.Value.IsNegative() {
			return fmt.Errorf("alimony value cannot be negative")
		}
	}
	for i, r := range in.Attendance {
		if r.Date.IsZero() {
			return fmt.Errorf("attendance record %d: date is required", i)
		}
		if r.OvertimeHours.IsNegative() {
			return fmt.Errorf("attendance record %d: %w", i, domain.ErrNegativeOvertime)
		}
	}
	for i, inc := range in.Incidents {
		if !inc.Type.Valid() {
			return fmt.Errorf("incident record %d (%q): %w", i, inc.Type, domain.ErrInvalidIncidentType)
		}
		if inc.Days < 0 {
			return fmt.Errorf("incident record %d: days cannot be negative", i)
		}
	}
	return nil
}
