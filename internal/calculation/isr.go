package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/domain"
)

// ISRCalculator computes the biweekly income-tax withholding via the
// progressive bracket table minus the employment subsidy.
type ISRCalculator struct {
	Brackets  []domain.ISRBracket
	Subsidies []domain.SubsidyBracket
}

// NewISRCalculator creates an ISR calculator bound to a law-year config.
func NewISRCalculator(reg *domain.RegulatoryConfig) *ISRCalculator {
	return &ISRCalculator{
		Brackets:  reg.ISRBrackets,
		Subsidies: reg.SubsidyBrackets,
	}
}

// findBracket resolves the bracket containing base. The published tables
// open at 0.01, so a base in [0, 0.01) resolves to the first row with its
// excess floored at zero.
func (tc *ISRCalculator) findBracket(base decimal.Decimal) domain.ISRBracket {
	for _, b := range tc.Brackets {
		if b.Contains(base) {
			return b
		}
	}
	return tc.Brackets[0]
}

func (tc *ISRCalculator) findSubsidy(base decimal.Decimal) decimal.Decimal {
	for _, s := range tc.Subsidies {
		if s.Contains(base) {
			return s.Amount
		}
	}
	if len(tc.Subsidies) > 0 {
		return tc.Subsidies[0].Amount
	}
	return decimal.Zero
}

// CalculateWithholding computes the period withholding for a taxable
// base: marginal rate on the excess over the bracket floor, plus the
// bracket's fixed quota, minus the employment subsidy, floored at zero.
// Every output field is rounded to 2 decimals independently.
func (tc *ISRCalculator) CalculateWithholding(taxableBase decimal.Decimal, applySubsidy bool) (*domain.ISRResult, error) {
	if taxableBase.IsNegative() {
		return nil, domain.ErrNegativeTaxableBase
	}
	if len(tc.Brackets) == 0 {
		return nil, domain.ErrBracketTableEmpty
	}

	row := tc.findBracket(taxableBase)
	excess := taxableBase.Sub(row.LowerBound)
	if excess.IsNegative() {
		excess = decimal.Zero
	}
	computed := applyPct(excess, row.MarginalPct).Add(row.FixedQuota)

	subsidy := decimal.Zero
	if applySubsidy {
		subsidy = tc.findSubsidy(taxableBase)
	}

	withheld := computed.Sub(subsidy)
	if withheld.IsNegative() {
		withheld = decimal.Zero
	}

	return &domain.ISRResult{
		TaxableBase: round2(taxableBase),
		ComputedISR: round2(computed),
		Subsidy:     round2(subsidy),
		WithheldISR: round2(withheld),
	}, nil
}

// ComputeTaxableBase sums the taxable share of each earnings concept.
// exemptAmounts carries the statutorily exempt portion per concept;
// concepts without an entry are fully taxable. The result is floored at
// zero and rounded to 2 decimals.
func ComputeTaxableBase(earnings map[string]decimal.Decimal, exemptAmounts map[string]decimal.Decimal) decimal.Decimal {
	base := decimal.Zero
	for concept, amount := range earnings {
		taxable := amount.Sub(exemptAmounts[concept])
		if taxable.IsNegative() {
			taxable = decimal.Zero
		}
		base = base.Add(taxable)
	}
	if base.IsNegative() {
		base = decimal.Zero
	}
	return round2(base)
}
