package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/domain"
)

// SDICalculator derives the integrated daily wage (SDI) and the
// contribution base wage (SBC) from an employee's wage parameters.
type SDICalculator struct {
	UMADaily decimal.Decimal
	SDICap   decimal.Decimal
}

// NewSDICalculator creates an SDI calculator bound to a law-year config.
func NewSDICalculator(reg *domain.RegulatoryConfig) *SDICalculator {
	return &SDICalculator{
		UMADaily: reg.UMADaily,
		SDICap:   reg.SDICap(),
	}
}

// DeriveSDI computes the integrated daily wage: the daily wage grossed up
// by the integration factor
//
//	1 + bonusDays/365 + (vacationDays × premiumPct/100)/365
//	  + otherAnnualBenefits/365/dailyWage
//
// capped at the statutory ceiling and rounded to 2 decimals. The result
// is recomputed fresh on every call; SDI is never mutated in place.
func (sc *SDICalculator) DeriveSDI(params domain.WageParameters) (decimal.Decimal, error) {
	wp := params.Normalized()
	if wp.DailyWage.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrNonPositiveDailyWage
	}

	factor := decimal.NewFromInt(1).
		Add(wp.AnnualBonusDays.Div(daysInYear)).
		Add(wp.VacationDays.Mul(wp.VacationPremiumPct).Div(hundred).Div(daysInYear)).
		Add(wp.OtherAnnualBenefits.Div(daysInYear).Div(wp.DailyWage))

	sdi := wp.DailyWage.Mul(factor)
	if sdi.GreaterThan(sc.SDICap) {
		sdi = sc.SDICap
	}
	return round2(sdi), nil
}

// DeriveSBC computes the contribution base wage for a period: the capped
// SDI times the days in the period. No rounding is applied here; the SBC
// participates in the downstream per-line rounding.
func (sc *SDICalculator) DeriveSBC(sdi decimal.Decimal, daysInPeriod int) (decimal.Decimal, error) {
	if sdi.IsNegative() {
		return decimal.Zero, domain.ErrNegativeSDI
	}
	if daysInPeriod <= 0 {
		return decimal.Zero, domain.ErrNonPositiveDays
	}
	capped := decimal.Min(sdi, sc.SDICap)
	return capped.Mul(decimal.NewFromInt(int64(daysInPeriod))), nil
}
