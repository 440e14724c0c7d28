package calculation

import "github.com/shopspring/decimal"

var (
	hundred    = decimal.NewFromInt(100)
	daysInYear = decimal.NewFromInt(365)
)

// round2 applies the statutory 2-decimal round-half-up used at every
// monetary output boundary. decimal.Round is half-away-from-zero, which
// matches half-up for the non-negative amounts handled here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// applyPct multiplies a base by a percentage expressed as e.g. 20.40.
func applyPct(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}
