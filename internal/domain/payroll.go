package domain

import (
	"github.com/shopspring/decimal"
)

// Earnings concepts.
const (
	ConceptBaseSalary     = "base_salary"
	ConceptOvertimeDouble = "overtime_double"
	ConceptOvertimeTriple = "overtime_triple"
	ConceptSundayPremium  = "sunday_premium"
	ConceptBonus          = "productivity_bonus"
)

// Deduction concepts.
const (
	ConceptIMSS          = "imss"
	ConceptISR           = "isr"
	ConceptLoans         = "loans"
	ConceptHousingCredit = "housing_credit"
	ConceptAlimony       = "alimony"
	ConceptUnionDues     = "union_dues"
	ConceptOther         = "other"
	ConceptAbsences      = "absences"
)

// IMSS contribution concepts, in statutory computation order.
const (
	QuotaInKindFixed      = "sickness_maternity_in_kind_fixed"
	QuotaInKindExcess     = "sickness_maternity_in_kind_excess"
	QuotaCashBenefits     = "sickness_maternity_in_cash"
	QuotaPensionerCare    = "pensioner_medical_expenses"
	QuotaDisabilityLife   = "disability_life"
	QuotaRetirement       = "retirement"
	QuotaUnemployment     = "unemployment_old_age"
	QuotaDaycare          = "daycare"
	QuotaOccupationalRisk = "occupational_risk"
)

// QuotaConceptOrder fixes the order quota lines are reported and summed
// in; the split fixed/excess in-kind lines make nine concepts in total.
var QuotaConceptOrder = []string{
	QuotaInKindFixed,
	QuotaInKindExcess,
	QuotaCashBenefits,
	QuotaPensionerCare,
	QuotaDisabilityLife,
	QuotaRetirement,
	QuotaUnemployment,
	QuotaDaycare,
	QuotaOccupationalRisk,
}

// QuotaLine is one contribution concept split into employer and employee
// shares, each already rounded to 2 decimals.
type QuotaLine struct {
	Employer decimal.Decimal `yaml:"employer" json:"employer"`
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
}

// QuotaTotals are the sums of the rounded line items.
type QuotaTotals struct {
	Employer decimal.Decimal `yaml:"employer" json:"employer"`
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
	Total    decimal.Decimal `yaml:"total" json:"total"`
}

// QuotaInfo records the bases the quotas were computed from.
type QuotaInfo struct {
	SDI        decimal.Decimal `yaml:"sdi" json:"sdi"`
	SBC        decimal.Decimal `yaml:"sbc" json:"sbc"`
	Days       int             `yaml:"days" json:"days"`
	CapApplied bool            `yaml:"cap_applied" json:"cap_applied"`
}

// IMSSQuotaBreakdown is the full result of one IMSS quota computation.
type IMSSQuotaBreakdown struct {
	Lines  map[string]QuotaLine `yaml:"lines" json:"lines"`
	Totals QuotaTotals          `yaml:"totals" json:"totals"`
	Info   QuotaInfo            `yaml:"info" json:"info"`
}

// ISRResult is the outcome of one withholding computation, all fields
// rounded to 2 decimals.
type ISRResult struct {
	TaxableBase decimal.Decimal `yaml:"taxable_base" json:"taxable_base"`
	ComputedISR decimal.Decimal `yaml:"computed_isr" json:"computed_isr"`
	Subsidy     decimal.Decimal `yaml:"subsidy" json:"subsidy"`
	WithheldISR decimal.Decimal `yaml:"withheld_isr" json:"withheld_isr"`
}

// PayrollTotals summarize one employee's period.
type PayrollTotals struct {
	Earnings   decimal.Decimal `yaml:"earnings" json:"earnings"`
	Deductions decimal.Decimal `yaml:"deductions" json:"deductions"`
	Net        decimal.Decimal `yaml:"net" json:"net"`
}

// PayrollDetails records the intermediate values behind the totals, for
// the payslip and for auditing.
type PayrollDetails struct {
	DaysWorked  int                `yaml:"days_worked" json:"days_worked"`
	DaysAbsent  int                `yaml:"days_absent" json:"days_absent"`
	SDI         decimal.Decimal    `yaml:"sdi" json:"sdi"`
	TaxableBase decimal.Decimal    `yaml:"taxable_base" json:"taxable_base"`
	IMSS        IMSSQuotaBreakdown `yaml:"imss" json:"imss"`
	ISR         ISRResult          `yaml:"isr" json:"isr"`
}

// PayrollResult is the complete outcome of one employee's payroll run.
// It is built once and never mutated after being returned.
type PayrollResult struct {
	EmployeeName string                     `yaml:"employee_name" json:"employee_name"`
	Earnings     map[string]decimal.Decimal `yaml:"earnings" json:"earnings"`
	Deductions   map[string]decimal.Decimal `yaml:"deductions" json:"deductions"`
	Totals       PayrollTotals              `yaml:"totals" json:"totals"`
	Details      PayrollDetails             `yaml:"details" json:"details"`
}

// PayrollRunResult aggregates the results of one run over a company's
// employees for a period.
type PayrollRunResult struct {
	RunID     string          `yaml:"run_id" json:"run_id"`
	Company   CompanyProfile  `yaml:"company" json:"company"`
	Period    PayPeriod       `yaml:"period" json:"period"`
	Results   []PayrollResult `yaml:"results" json:"results"`
	TotalNet  decimal.Decimal `yaml:"total_net" json:"total_net"`
	TotalCost decimal.Decimal `yaml:"total_cost" json:"total_cost"`
}
