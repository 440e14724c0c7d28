package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statutory default benefit parameters (LFT minimums used when the
// employee record does not override them).
var (
	DefaultAnnualBonusDays    = decimal.NewFromInt(15)
	DefaultVacationDays       = decimal.NewFromInt(12)
	DefaultVacationPremiumPct = decimal.NewFromInt(25)
)

// WageParameters holds the inputs needed to derive an employee's
// integrated daily wage (SDI).
type WageParameters struct {
	DailyWage           decimal.Decimal `yaml:"daily_wage" json:"daily_wage"`
	AnnualBonusDays     decimal.Decimal `yaml:"annual_bonus_days" json:"annual_bonus_days"`
	VacationDays        decimal.Decimal `yaml:"vacation_days" json:"vacation_days"`
	VacationPremiumPct  decimal.Decimal `yaml:"vacation_premium_pct" json:"vacation_premium_pct"`
	OtherAnnualBenefits decimal.Decimal `yaml:"other_annual_benefits" json:"other_annual_benefits"`
}

// Normalized returns a copy with the statutory defaults applied to any
// zero-valued benefit parameter. DailyWage is never defaulted.
func (wp WageParameters) Normalized() WageParameters {
	out := wp
	if out.AnnualBonusDays.IsZero() {
		out.AnnualBonusDays = DefaultAnnualBonusDays
	}
	if out.VacationDays.IsZero() {
		out.VacationDays = DefaultVacationDays
	}
	if out.VacationPremiumPct.IsZero() {
		out.VacationPremiumPct = DefaultVacationPremiumPct
	}
	return out
}

// IncidentType classifies a per-period incident record.
type IncidentType string

const (
	IncidentAbsence   IncidentType = "absence"
	IncidentSickLeave IncidentType = "sick_leave"
	IncidentVacation  IncidentType = "vacation"
)

// Paid reports whether days of this incident type count toward days worked.
func (t IncidentType) Paid() bool {
	return t == IncidentSickLeave || t == IncidentVacation
}

// Valid reports whether the incident type is one of the known kinds.
func (t IncidentType) Valid() bool {
	switch t {
	case IncidentAbsence, IncidentSickLeave, IncidentVacation:
		return true
	}
	return false
}

// AttendanceRecord is one day of recorded attendance, with any overtime
// worked that day.
type AttendanceRecord struct {
	Date          time.Time       `yaml:"date" json:"date"`
	OvertimeHours decimal.Decimal `yaml:"overtime_hours" json:"overtime_hours"`
}

// IncidentRecord is a per-period incident (absence, paid leave) covering
// one or more days.
type IncidentRecord struct {
	Type IncidentType `yaml:"type" json:"type"`
	Days int          `yaml:"days" json:"days"`
}

// Loan is an active employee loan; its installment is deducted each period.
type Loan struct {
	Description string          `yaml:"description" json:"description"`
	Installment decimal.Decimal `yaml:"installment" json:"installment"`
}

// HousingCreditMode selects how an INFONAVIT credit discount is computed.
type HousingCreditMode string

const (
	// HousingCreditFixed deducts a flat amount per period.
	HousingCreditFixed HousingCreditMode = "fixed"
	// HousingCreditPercentage deducts a percentage of gross earnings.
	HousingCreditPercentage HousingCreditMode = "percentage"
	// HousingCreditVSM deducts a multiple of the daily minimum wage
	// prorated by days worked.
	HousingCreditVSM HousingCreditMode = "vsm"
)

// HousingCredit describes an employee's housing-fund credit discount.
// The three modes are mutually exclusive; Value is interpreted per Mode.
type HousingCredit struct {
	Mode  HousingCreditMode `yaml:"mode" json:"mode"`
	Value decimal.Decimal   `yaml:"value" json:"value"`
}

// AlimonyMode selects how a court-ordered alimony withholding is computed.
type AlimonyMode string

const (
	AlimonyPercentage AlimonyMode = "percentage" // percentage of gross earnings
	AlimonyFixed      AlimonyMode = "fixed"      // flat amount per period
)

// Alimony describes a court-ordered alimony withholding.
type Alimony struct {
	Mode  AlimonyMode     `yaml:"mode" json:"mode"`
	Value decimal.Decimal `yaml:"value" json:"value"`
}

// Employee carries the master data the payroll engine needs for one
// employee. Attendance and incidents arrive separately per period.
type Employee struct {
	Name              string          `yaml:"name" json:"name"`
	DailyWage         decimal.Decimal `yaml:"daily_wage" json:"daily_wage"`
	Wage              WageParameters  `yaml:"wage_parameters" json:"wage_parameters"`
	ProductivityBonus decimal.Decimal `yaml:"productivity_bonus,omitempty" json:"productivity_bonus,omitempty"`
	Loans             []Loan          `yaml:"loans,omitempty" json:"loans,omitempty"`
	HousingCredit     *HousingCredit  `yaml:"housing_credit,omitempty" json:"housing_credit,omitempty"`
	Alimony           *Alimony        `yaml:"alimony,omitempty" json:"alimony,omitempty"`
	UnionDues         decimal.Decimal `yaml:"union_dues,omitempty" json:"union_dues,omitempty"`
	OtherDeductions   decimal.Decimal `yaml:"other_deductions,omitempty" json:"other_deductions,omitempty"`
}

// WageParams returns the employee's wage parameters with the daily wage
// filled in and statutory defaults applied.
func (e *Employee) WageParams() WageParameters {
	wp := e.Wage.Normalized()
	wp.DailyWage = e.DailyWage
	return wp
}

// PayPeriod identifies one biweekly payroll period.
type PayPeriod struct {
	Start time.Time `yaml:"start" json:"start"`
	Days  int       `yaml:"days" json:"days"`
}

// Weeks returns the number of whole weeks covered by the period (two for
// the standard 15-day period). Used by the overtime exemption cap.
func (p PayPeriod) Weeks() int {
	return p.Days / 7
}

// CompanyProfile carries the company-level payroll configuration.
type CompanyProfile struct {
	Name           string          `yaml:"name" json:"name"`
	RiskPremiumPct decimal.Decimal `yaml:"risk_premium_pct" json:"risk_premium_pct"`
}

// EmployeePeriodInput bundles an employee with their per-period records.
type EmployeePeriodInput struct {
	Employee   Employee           `yaml:"employee" json:"employee"`
	Attendance []AttendanceRecord `yaml:"attendance" json:"attendance"`
	Incidents  []IncidentRecord   `yaml:"incidents,omitempty" json:"incidents,omitempty"`
}

// PayrollInput is the complete input for one payroll run: a company, a
// period, and the employees to pay.
type PayrollInput struct {
	Company   CompanyProfile        `yaml:"company" json:"company"`
	Period    PayPeriod             `yaml:"period" json:"period"`
	Employees []EmployeePeriodInput `yaml:"employees" json:"employees"`
}
