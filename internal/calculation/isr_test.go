package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominamx/nomina/internal/domain"
)

func TestCalculateWithholding(t *testing.T) {
	calc := NewISRCalculator(domain.NewRegulatoryConfig2024())

	tests := []struct {
		name         string
		base         string
		applySubsidy bool
		computed     string
		subsidy      string
		withheld     string
	}{
		{
			// Subsidy exceeds the computed tax, so nothing is withheld.
			name:         "subsidy fully offsets the tax",
			base:         "3000.00",
			applySubsidy: true,
			computed:     "175.49",
			subsidy:      "178.20",
			withheld:     "0.00",
		},
		{
			name:         "minimum wage biweekly gross",
			base:         "3733.95",
			applySubsidy: true,
			computed:     "249.77",
			subsidy:      "0.00",
			withheld:     "249.77",
		},
		{
			name:         "zero base resolves to the first row",
			base:         "0",
			applySubsidy: true,
			computed:     "0.00",
			subsidy:      "200.85",
			withheld:     "0.00",
		},
		{
			name:         "low base still below the subsidy",
			base:         "200.00",
			applySubsidy: true,
			computed:     "3.84",
			subsidy:      "200.85",
			withheld:     "0.00",
		},
		{
			name:         "top marginal rate on the open-ended row",
			base:         "200000.00",
			applySubsidy: true,
			computed:     "63250.34",
			subsidy:      "0.00",
			withheld:     "63250.34",
		},
		{
			name:         "subsidy disabled",
			base:         "3000.00",
			applySubsidy: false,
			computed:     "175.49",
			subsidy:      "0.00",
			withheld:     "175.49",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.CalculateWithholding(decimal.RequireFromString(tt.base), tt.applySubsidy)
			require.NoError(t, err)
			assert.Equal(t, tt.computed, result.ComputedISR.StringFixed(2), "computed")
			assert.Equal(t, tt.subsidy, result.Subsidy.StringFixed(2), "subsidy")
			assert.Equal(t, tt.withheld, result.WithheldISR.StringFixed(2), "withheld")
		})
	}
}

func TestCalculateWithholding_RejectsNegativeBase(t *testing.T) {
	calc := NewISRCalculator(domain.NewRegulatoryConfig2024())

	_, err := calc.CalculateWithholding(decimal.NewFromInt(-1), true)
	assert.ErrorIs(t, err, domain.ErrNegativeTaxableBase)
}

func TestCalculateWithholding_NeverNegative(t *testing.T) {
	calc := NewISRCalculator(domain.NewRegulatoryConfig2024())

	base := decimal.Zero
	step := decimal.RequireFromString("137.53")
	limit := decimal.NewFromInt(250000)
	for base.LessThan(limit) {
		result, err := calc.CalculateWithholding(base, true)
		require.NoError(t, err)
		assert.False(t, result.WithheldISR.IsNegative(), "base %s", base)
		assert.False(t, result.ComputedISR.IsNegative(), "base %s", base)
		base = base.Add(step)
	}
}

func TestBracketTables_CoverEveryBase(t *testing.T) {
	reg := domain.NewRegulatoryConfig2024()

	// Every positive base must fall into exactly one bracket row and at
	// most one subsidy row; gaps or overlaps would make withholding
	// depend on iteration order.
	base := decimal.RequireFromString("0.01")
	step := decimal.RequireFromString("93.17")
	limit := decimal.NewFromInt(200000)
	for base.LessThan(limit) {
		matches := 0
		for _, b := range reg.ISRBrackets {
			if b.Contains(base) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "bracket rows matching base %s", base)

		subsidyMatches := 0
		for _, s := range reg.SubsidyBrackets {
			if s.Contains(base) {
				subsidyMatches++
			}
		}
		assert.Equal(t, 1, subsidyMatches, "subsidy rows matching base %s", base)

		base = base.Add(step)
	}
}

func TestComputeTaxableBase(t *testing.T) {
	earnings := map[string]decimal.Decimal{
		domain.ConceptBaseSalary:     decimal.RequireFromString("3733.95"),
		domain.ConceptOvertimeDouble: decimal.RequireFromString("900.00"),
		domain.ConceptSundayPremium:  decimal.RequireFromString("100.00"),
	}
	exempt := map[string]decimal.Decimal{
		domain.ConceptOvertimeDouble: decimal.RequireFromString("450.00"),
		// Exemption larger than the concept: the concept floors at zero
		// rather than offsetting other earnings.
		domain.ConceptSundayPremium: decimal.RequireFromString("250.00"),
	}

	base := ComputeTaxableBase(earnings, exempt)
	assert.Equal(t, "4183.95", base.StringFixed(2))
}

func TestComputeTaxableBase_FullyExempt(t *testing.T) {
	earnings := map[string]decimal.Decimal{
		domain.ConceptSundayPremium: decimal.RequireFromString("100.00"),
	}
	exempt := map[string]decimal.Decimal{
		domain.ConceptSundayPremium: decimal.RequireFromString("100.00"),
	}
	assert.True(t, ComputeTaxableBase(earnings, exempt).IsZero())
}
