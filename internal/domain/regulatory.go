package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains all law-year data the calculators depend on.
// It is loaded once from regulatory.yaml (or built from the compiled-in
// defaults) and treated as immutable for the duration of a payroll run;
// annual legal updates are a data change, not a code change.
type RegulatoryConfig struct {
	Metadata        RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	UMADaily        decimal.Decimal    `yaml:"uma_daily" json:"uma_daily"`
	MinimumWage     decimal.Decimal    `yaml:"minimum_wage_daily" json:"minimum_wage_daily"`
	SDICapMultiple  decimal.Decimal    `yaml:"sdi_cap_multiple" json:"sdi_cap_multiple"`
	IMSSRates       IMSSRates          `yaml:"imss_rates" json:"imss_rates"`
	ISRBrackets     []ISRBracket       `yaml:"isr_brackets" json:"isr_brackets"`
	SubsidyBrackets []SubsidyBracket   `yaml:"subsidy_brackets" json:"subsidy_brackets"`
}

// RegulatoryMetadata records the provenance of the regulatory data.
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// SDICap returns the statutory ceiling for the integrated daily wage
// (UMA times the cap multiple, 25 by law).
func (rc *RegulatoryConfig) SDICap() decimal.Decimal {
	return rc.UMADaily.Mul(rc.SDICapMultiple)
}

// IMSSRates holds the statutory contribution percentages. All values are
// percentages (20.40 means 20.40%).
type IMSSRates struct {
	FixedQuotaPct             decimal.Decimal `yaml:"fixed_quota_pct" json:"fixed_quota_pct"`
	ExcessEmployerPct         decimal.Decimal `yaml:"excess_employer_pct" json:"excess_employer_pct"`
	ExcessEmployeePct         decimal.Decimal `yaml:"excess_employee_pct" json:"excess_employee_pct"`
	CashBenefitsEmployerPct   decimal.Decimal `yaml:"cash_benefits_employer_pct" json:"cash_benefits_employer_pct"`
	CashBenefitsEmployeePct   decimal.Decimal `yaml:"cash_benefits_employee_pct" json:"cash_benefits_employee_pct"`
	PensionerCareEmployerPct  decimal.Decimal `yaml:"pensioner_care_employer_pct" json:"pensioner_care_employer_pct"`
	PensionerCareEmployeePct  decimal.Decimal `yaml:"pensioner_care_employee_pct" json:"pensioner_care_employee_pct"`
	DisabilityLifeEmployerPct decimal.Decimal `yaml:"disability_life_employer_pct" json:"disability_life_employer_pct"`
	DisabilityLifeEmployeePct decimal.Decimal `yaml:"disability_life_employee_pct" json:"disability_life_employee_pct"`
	RetirementEmployerPct     decimal.Decimal `yaml:"retirement_employer_pct" json:"retirement_employer_pct"`
	UnemploymentEmployerPct   decimal.Decimal `yaml:"unemployment_employer_pct" json:"unemployment_employer_pct"`
	UnemploymentEmployeePct   decimal.Decimal `yaml:"unemployment_employee_pct" json:"unemployment_employee_pct"`
	DaycareEmployerPct        decimal.Decimal `yaml:"daycare_employer_pct" json:"daycare_employer_pct"`
	DefaultRiskPremiumPct     decimal.Decimal `yaml:"default_risk_premium_pct" json:"default_risk_premium_pct"`
}

// ISRBracket is one row of the progressive withholding table. A nil
// UpperBound marks the open-ended top bracket.
type ISRBracket struct {
	LowerBound  decimal.Decimal  `yaml:"lower_bound" json:"lower_bound"`
	UpperBound  *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	FixedQuota  decimal.Decimal  `yaml:"fixed_quota" json:"fixed_quota"`
	MarginalPct decimal.Decimal  `yaml:"marginal_pct" json:"marginal_pct"`
}

// Contains reports whether base falls in this bracket.
func (b ISRBracket) Contains(base decimal.Decimal) bool {
	if base.LessThan(b.LowerBound) {
		return false
	}
	return b.UpperBound == nil || base.LessThanOrEqual(*b.UpperBound)
}

// SubsidyBracket is one row of the employment-subsidy table. A nil To
// marks the open-ended last row (zero subsidy above the table).
type SubsidyBracket struct {
	From   decimal.Decimal  `yaml:"from" json:"from"`
	To     *decimal.Decimal `yaml:"to,omitempty" json:"to,omitempty"`
	Amount decimal.Decimal  `yaml:"amount" json:"amount"`
}

// Contains reports whether base falls in this subsidy row.
func (b SubsidyBracket) Contains(base decimal.Decimal) bool {
	if base.LessThan(b.From) {
		return false
	}
	return b.To == nil || base.LessThanOrEqual(*b.To)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// NewRegulatoryConfig2024 returns the 2024 law-year configuration. These
// values are the compiled-in defaults; deployments load the current year
// from regulatory.yaml instead.
func NewRegulatoryConfig2024() *RegulatoryConfig {
	return &RegulatoryConfig{
		Metadata: RegulatoryMetadata{
			DataYear:    2024,
			LastUpdated: "2024-02-01",
			Description: "UMA, IMSS e ISR quincenal 2024",
		},
		UMADaily:       dec("108.57"),
		MinimumWage:    dec("248.93"),
		SDICapMultiple: dec("25"),
		IMSSRates: IMSSRates{
			FixedQuotaPct:             dec("20.40"),
			ExcessEmployerPct:         dec("1.10"),
			ExcessEmployeePct:         dec("0.40"),
			CashBenefitsEmployerPct:   dec("0.70"),
			CashBenefitsEmployeePct:   dec("0.25"),
			PensionerCareEmployerPct:  dec("1.05"),
			PensionerCareEmployeePct:  dec("0.375"),
			DisabilityLifeEmployerPct: dec("1.75"),
			DisabilityLifeEmployeePct: dec("0.625"),
			RetirementEmployerPct:     dec("2.00"),
			UnemploymentEmployerPct:   dec("3.150"),
			UnemploymentEmployeePct:   dec("1.125"),
			DaycareEmployerPct:        dec("1.00"),
			DefaultRiskPremiumPct:     dec("0.54355"),
		},
		ISRBrackets: []ISRBracket{
			{LowerBound: dec("0.01"), UpperBound: decPtr("368.10"), FixedQuota: dec("0.00"), MarginalPct: dec("1.92")},
			{LowerBound: dec("368.11"), UpperBound: decPtr("3124.35"), FixedQuota: dec("7.05"), MarginalPct: dec("6.40")},
			{LowerBound: dec("3124.36"), UpperBound: decPtr("5490.75"), FixedQuota: dec("183.45"), MarginalPct: dec("10.88")},
			{LowerBound: dec("5490.76"), UpperBound: decPtr("6382.80"), FixedQuota: dec("441.00"), MarginalPct: dec("16.00")},
			{LowerBound: dec("6382.81"), UpperBound: decPtr("7641.90"), FixedQuota: dec("583.65"), MarginalPct: dec("17.92")},
			{LowerBound: dec("7641.91"), UpperBound: decPtr("15412.80"), FixedQuota: dec("809.25"), MarginalPct: dec("21.36")},
			{LowerBound: dec("15412.81"), UpperBound: decPtr("24292.65"), FixedQuota: dec("2469.15"), MarginalPct: dec("23.52")},
			{LowerBound: dec("24292.66"), UpperBound: decPtr("46378.50"), FixedQuota: dec("4557.75"), MarginalPct: dec("30.00")},
			{LowerBound: dec("46378.51"), UpperBound: decPtr("61838.10"), FixedQuota: dec("11183.40"), MarginalPct: dec("32.00")},
			{LowerBound: dec("61838.11"), UpperBound: decPtr("185514.30"), FixedQuota: dec("16130.55"), MarginalPct: dec("34.00")},
			{LowerBound: dec("185514.31"), UpperBound: nil, FixedQuota: dec("58180.35"), MarginalPct: dec("35.00")},
		},
		SubsidyBrackets: []SubsidyBracket{
			{From: dec("0.01"), To: decPtr("872.85"), Amount: dec("200.85")},
			{From: dec("872.86"), To: decPtr("1309.20"), Amount: dec("200.70")},
			{From: dec("1309.21"), To: decPtr("1713.60"), Amount: dec("200.70")},
			{From: dec("1713.61"), To: decPtr("1745.70"), Amount: dec("193.80")},
			{From: dec("1745.71"), To: decPtr("2193.75"), Amount: dec("188.70")},
			{From: dec("2193.76"), To: decPtr("2500.00"), Amount: dec("182.55")},
			{From: dec("2500.01"), To: decPtr("3000.00"), Amount: dec("178.20")},
			{From: dec("3000.01"), To: decPtr("3642.60"), Amount: dec("145.35")},
			{From: dec("3642.61"), To: nil, Amount: dec("0.00")},
		},
	}
}
