package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominamx/nomina/internal/domain"
)

func writeTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateRegulatory_DefaultsPass(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateRegulatory(domain.NewRegulatoryConfig2024()))
}

func TestValidateRegulatory_Scalars(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(*domain.RegulatoryConfig)
		wantErr error
	}{
		{
			name:    "zero UMA",
			mutate:  func(reg *domain.RegulatoryConfig) { reg.UMADaily = decimal.Zero },
			wantErr: domain.ErrNonPositiveUMA,
		},
		{
			name:    "zero cap multiple",
			mutate:  func(reg *domain.RegulatoryConfig) { reg.SDICapMultiple = decimal.Zero },
			wantErr: domain.ErrNonPositiveCap,
		},
		{
			name:    "zero minimum wage",
			mutate:  func(reg *domain.RegulatoryConfig) { reg.MinimumWage = decimal.Zero },
			wantErr: domain.ErrNonPositiveMinimumWage,
		},
		{
			name: "negative rate",
			mutate: func(reg *domain.RegulatoryConfig) {
				reg.IMSSRates.DaycareEmployerPct = decimal.NewFromInt(-1)
			},
			wantErr: domain.ErrNegativeRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := domain.NewRegulatoryConfig2024()
			tt.mutate(reg)
			assert.ErrorIs(t, parser.ValidateRegulatory(reg), tt.wantErr)
		})
	}
}

func TestValidateRegulatory_BracketTables(t *testing.T) {
	parser := NewInputParser()
	gapBound := decimal.RequireFromString("400.00")
	closedBound := decimal.RequireFromString("999999.99")

	tests := []struct {
		name    string
		mutate  func(*domain.RegulatoryConfig)
		wantErr error
	}{
		{
			name:    "empty ISR table",
			mutate:  func(reg *domain.RegulatoryConfig) { reg.ISRBrackets = nil },
			wantErr: domain.ErrBracketTableEmpty,
		},
		{
			// Row 0 ends at 368.10 but row 1 would now start past 368.11.
			name: "gap between ISR rows",
			mutate: func(reg *domain.RegulatoryConfig) {
				reg.ISRBrackets[1].LowerBound = gapBound
			},
			wantErr: domain.ErrBracketTableGap,
		},
		{
			name: "closed last ISR row",
			mutate: func(reg *domain.RegulatoryConfig) {
				reg.ISRBrackets[len(reg.ISRBrackets)-1].UpperBound = &closedBound
			},
			wantErr: domain.ErrBracketTableNotOpen,
		},
		{
			name: "open-ended row in the middle",
			mutate: func(reg *domain.RegulatoryConfig) {
				reg.ISRBrackets[2].UpperBound = nil
			},
			wantErr: domain.ErrBracketTableGap,
		},
		{
			name: "inverted ISR row bounds",
			mutate: func(reg *domain.RegulatoryConfig) {
				inverted := decimal.NewFromInt(100)
				reg.ISRBrackets[1].UpperBound = &inverted
			},
			wantErr: domain.ErrBracketTableGap,
		},
		{
			name:    "empty subsidy table",
			mutate:  func(reg *domain.RegulatoryConfig) { reg.SubsidyBrackets = nil },
			wantErr: domain.ErrBracketTableEmpty,
		},
		{
			name: "gap between subsidy rows",
			mutate: func(reg *domain.RegulatoryConfig) {
				reg.SubsidyBrackets[1].From = decimal.NewFromInt(900)
			},
			wantErr: domain.ErrBracketTableGap,
		},
		{
			name: "closed last subsidy row",
			mutate: func(reg *domain.RegulatoryConfig) {
				reg.SubsidyBrackets[len(reg.SubsidyBrackets)-1].To = &closedBound
			},
			wantErr: domain.ErrBracketTableNotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := domain.NewRegulatoryConfig2024()
			tt.mutate(reg)
			assert.ErrorIs(t, parser.ValidateRegulatory(reg), tt.wantErr)
		})
	}
}

func TestLoadRegulatoryFromFile(t *testing.T) {
	parser := NewInputParser()

	path := writeTempYAML(t, "regulatory.yaml", `
metadata:
  data_year: 2024
uma_daily: "108.57"
minimum_wage_daily: "248.93"
sdi_cap_multiple: "25"
imss_rates:
  fixed_quota_pct: "20.40"
  excess_employer_pct: "1.10"
  excess_employee_pct: "0.40"
  cash_benefits_employer_pct: "0.70"
  cash_benefits_employee_pct: "0.25"
  pensioner_care_employer_pct: "1.05"
  pensioner_care_employee_pct: "0.375"
  disability_life_employer_pct: "1.75"
  disability_life_employee_pct: "0.625"
  retirement_employer_pct: "2.00"
  unemployment_employer_pct: "3.150"
  unemployment_employee_pct: "1.125"
  daycare_employer_pct: "1.00"
  default_risk_premium_pct: "0.54355"
isr_brackets:
  - lower_bound: "0.01"
    upper_bound: "368.10"
    fixed_quota: "0.00"
    marginal_pct: "1.92"
  - lower_bound: "368.11"
    fixed_quota: "7.05"
    marginal_pct: "6.40"
subsidy_brackets:
  - from: "0.01"
    to: "3000.00"
    amount: "178.20"
  - from: "3000.01"
    amount: "0.00"
`)

	reg, err := parser.LoadRegulatoryFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2024, reg.Metadata.DataYear)
	assert.Equal(t, "108.57", reg.UMADaily.StringFixed(2))
	assert.Equal(t, "2714.25", reg.SDICap().StringFixed(2))
	require.Len(t, reg.ISRBrackets, 2)
	assert.Nil(t, reg.ISRBrackets[1].UpperBound)
	assert.Equal(t, "6.40", reg.ISRBrackets[1].MarginalPct.String())
}

func TestLoadRegulatoryFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadRegulatoryFromFile("does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to read file")

	path := writeTempYAML(t, "broken.yaml", "uma_daily: [not a number\n")
	_, err = parser.LoadRegulatoryFromFile(path)
	assert.ErrorContains(t, err, "failed to parse YAML")

	path = writeTempYAML(t, "invalid.yaml", "uma_daily: \"0\"\n")
	_, err = parser.LoadRegulatoryFromFile(path)
	assert.ErrorIs(t, err, domain.ErrNonPositiveUMA)
}

func TestLoadPayrollInputFromFile(t *testing.T) {
	parser := NewInputParser()

	path := writeTempYAML(t, "input.yaml", `
company:
  name: Taller Norte
  risk_premium_pct: "0.54355"
period:
  start: 2024-01-01T00:00:00Z
  days: 15
employees:
  - employee:
      name: Luz Hernández
      daily_wage: "248.93"
      loans:
        - description: caja de ahorro
          installment: "250.00"
      housing_credit:
        mode: percentage
        value: "20"
    attendance:
      - date: 2024-01-02T00:00:00Z
        overtime_hours: "2"
    incidents:
      - type: vacation
        days: 1
`)

	input, err := parser.LoadPayrollInputFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Taller Norte", input.Company.Name)
	assert.Equal(t, 15, input.Period.Days)
	require.Len(t, input.Employees, 1)

	e := input.Employees[0]
	assert.Equal(t, "Luz Hernández", e.Employee.Name)
	assert.Equal(t, "248.93", e.Employee.DailyWage.StringFixed(2))
	require.Len(t, e.Employee.Loans, 1)
	require.NotNil(t, e.Employee.HousingCredit)
	assert.Equal(t, domain.HousingCreditPercentage, e.Employee.HousingCredit.Mode)
	require.Len(t, e.Attendance, 1)
	assert.Equal(t, "2", e.Attendance[0].OvertimeHours.String())
	require.Len(t, e.Incidents, 1)
	assert.Equal(t, domain.IncidentVacation, e.Incidents[0].Type)
}

func validPayrollInput() *domain.PayrollInput {
	return &domain.PayrollInput{
		Company: domain.CompanyProfile{Name: "Taller Norte"},
		Period: domain.PayPeriod{
			Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			Days:  15,
		},
		Employees: []domain.EmployeePeriodInput{
			{
				Employee: domain.Employee{
					Name:      "Luz Hernández",
					DailyWage: decimal.RequireFromString("248.93"),
				},
				Attendance: []domain.AttendanceRecord{
					{Date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)},
				},
			},
		},
	}
}

func TestValidatePayrollInput(t *testing.T) {
	parser := NewInputParser()

	assert.NoError(t, parser.ValidatePayrollInput(validPayrollInput()))

	tests := []struct {
		name    string
		mutate  func(*domain.PayrollInput)
		errText string
	}{
		{
			name:    "missing company name",
			mutate:  func(in *domain.PayrollInput) { in.Company.Name = "" },
			errText: "company name is required",
		},
		{
			name: "negative risk premium",
			mutate: func(in *domain.PayrollInput) {
				in.Company.RiskPremiumPct = decimal.NewFromInt(-1)
			},
			errText: domain.ErrNegativeRiskPremium.Error(),
		},
		{
			name:    "no employees",
			mutate:  func(in *domain.PayrollInput) { in.Employees = nil },
			errText: "no employees provided",
		},
		{
			name:    "zero-day period",
			mutate:  func(in *domain.PayrollInput) { in.Period.Days = 0 },
			errText: domain.ErrInvalidPeriod.Error(),
		},
		{
			name: "employee without name",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Employee.Name = ""
			},
			errText: domain.ErrMissingEmployeeName.Error(),
		},
		{
			name: "non-positive wage",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Employee.DailyWage = decimal.Zero
			},
			errText: domain.ErrNonPositiveDailyWage.Error(),
		},
		{
			name: "unknown housing credit mode",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Employee.HousingCredit = &domain.HousingCredit{
					Mode:  "umas",
					Value: decimal.NewFromInt(1),
				}
			},
			errText: "housing credit mode",
		},
		{
			name: "unknown alimony mode",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Employee.Alimony = &domain.Alimony{
					Mode:  "sliding",
					Value: decimal.NewFromInt(1),
				}
			},
			errText: "alimony mode",
		},
		{
			name: "negative loan installment",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Employee.Loans = []domain.Loan{
					{Installment: decimal.NewFromInt(-10)},
				}
			},
			errText: "installment cannot be negative",
		},
		{
			name: "attendance without date",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Attendance = []domain.AttendanceRecord{{}}
			},
			errText: "date is required",
		},
		{
			name: "unknown incident type",
			mutate: func(in *domain.PayrollInput) {
				in.Employees[0].Incidents = []domain.IncidentRecord{{Type: "strike", Days: 1}}
			},
			errText: domain.ErrInvalidIncidentType.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validPayrollInput()
			tt.mutate(input)
			assert.ErrorContains(t, parser.ValidatePayrollInput(input), tt.errText)
		})
	}
}
