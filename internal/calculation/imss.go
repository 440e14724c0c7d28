package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/domain"
)

// IMSSCalculator computes the statutory social-security quotas for one
// employee and period, split into employer and employee shares.
type IMSSCalculator struct {
	UMADaily       decimal.Decimal
	SDICap         decimal.Decimal
	Rates          domain.IMSSRates
	RiskPremiumPct decimal.Decimal
}

// NewIMSSCalculator creates an IMSS calculator bound to a law-year config
// and a company's occupational-risk premium. A zero premium falls back to
// the class-I statutory minimum from the config.
func NewIMSSCalculator(reg *domain.RegulatoryConfig, riskPremiumPct decimal.Decimal) *IMSSCalculator {
	if riskPremiumPct.IsZero() {
		riskPremiumPct = reg.IMSSRates.DefaultRiskPremiumPct
	}
	return &IMSSCalculator{
		UMADaily:       reg.UMADaily,
		SDICap:         reg.SDICap(),
		Rates:          reg.IMSSRates,
		RiskPremiumPct: riskPremiumPct,
	}
}

// CalculateQuotas computes the nine contribution line items for the given
// SDI and days to contribute. Every line is rounded to 2 decimals before
// the totals are summed, matching statutory practice. The computation is
// pure: identical inputs always produce identical decimals.
func (ic *IMSSCalculator) CalculateQuotas(sdi decimal.Decimal, daysToContribute int, applyExcessOver3UMA bool) (*domain.IMSSQuotaBreakdown, error) {
	if sdi.IsNegative() {
		return nil, domain.ErrNegativeSDI
	}
	if daysToContribute <= 0 {
		return nil, domain.ErrNonPositiveDays
	}

	days := decimal.NewFromInt(int64(daysToContribute))
	capped := decimal.Min(sdi, ic.SDICap)
	sbc := capped.Mul(days)

	lines := make(map[string]domain.QuotaLine, len(domain.QuotaConceptOrder))
	add := func(concept string, employer, employee decimal.Decimal) {
		lines[concept] = domain.QuotaLine{
			Employer: round2(employer),
			Employee: round2(employee),
		}
	}

	// Sickness/maternity in kind: fixed employer quota on the UMA, plus
	// the excess-over-3-UMA surcharge when the SDI crosses that line.
	umaDays := ic.UMADaily.Mul(days)
	add(domain.QuotaInKindFixed, applyPct(umaDays, ic.Rates.FixedQuotaPct), decimal.Zero)

	threeUMA := ic.UMADaily.Mul(decimal.NewFromInt(3))
	excessEmployer, excessEmployee := decimal.Zero, decimal.Zero
	if applyExcessOver3UMA && capped.GreaterThan(threeUMA) {
		excessBase := capped.Sub(threeUMA).Mul(days)
		excessEmployer = applyPct(excessBase, ic.Rates.ExcessEmployerPct)
		excessEmployee = applyPct(excessBase, ic.Rates.ExcessEmployeePct)
	}
	add(domain.QuotaInKindExcess, excessEmployer, excessEmployee)

	add(domain.QuotaCashBenefits,
		applyPct(sbc, ic.Rates.CashBenefitsEmployerPct),
		applyPct(sbc, ic.Rates.CashBenefitsEmployeePct))
	add(domain.QuotaPensionerCare,
		applyPct(sbc, ic.Rates.PensionerCareEmployerPct),
		applyPct(sbc, ic.Rates.PensionerCareEmployeePct))
	add(domain.QuotaDisabilityLife,
		applyPct(sbc, ic.Rates.DisabilityLifeEmployerPct),
		applyPct(sbc, ic.Rates.DisabilityLifeEmployeePct))
	add(domain.QuotaRetirement,
		applyPct(sbc, ic.Rates.RetirementEmployerPct), decimal.Zero)
	add(domain.QuotaUnemployment,
		applyPct(sbc, ic.Rates.UnemploymentEmployerPct),
		applyPct(sbc, ic.Rates.UnemploymentEmployeePct))
	add(domain.QuotaDaycare,
		applyPct(sbc, ic.Rates.DaycareEmployerPct), decimal.Zero)
	add(domain.QuotaOccupationalRisk,
		applyPct(sbc, ic.RiskPremiumPct), decimal.Zero)

	// Totals are sums of the already-rounded lines, never a separately
	// rounded recomputation.
	var employer, employee decimal.Decimal
	for _, concept := range domain.QuotaConceptOrder {
		employer = employer.Add(lines[concept].Employer)
		employee = employee.Add(lines[concept].Employee)
	}

	return &domain.IMSSQuotaBreakdown{
		Lines: lines,
		Totals: domain.QuotaTotals{
			Employer: employer,
			Employee: employee,
			Total:    employer.Add(employee),
		},
		Info: domain.QuotaInfo{
			SDI:        capped,
			SBC:        sbc,
			Days:       daysToContribute,
			CapApplied: sdi.GreaterThan(ic.SDICap),
		},
	}, nil
}
