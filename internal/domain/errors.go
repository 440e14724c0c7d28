package domain

import "errors"

// Validation errors: malformed or out-of-domain inputs, surfaced before
// any computation proceeds. The calculators never clamp or guess.
var (
	ErrNonPositiveDailyWage = errors.New("daily wage must be positive")
	ErrNegativeSDI          = errors.New("SDI cannot be negative")
	ErrNonPositiveDays      = errors.New("days must be positive")
	ErrNegativeTaxableBase  = errors.New("taxable base cannot be negative")
	ErrMissingEmployeeName  = errors.New("employee name is required")
	ErrInvalidIncidentType  = errors.New("unknown incident type")
	ErrNegativeOvertime     = errors.New("overtime hours cannot be negative")
	ErrInvalidPeriod        = errors.New("period days must be positive")
)

// Configuration errors: detected when the law-year data is loaded, never
// deep inside a calculation.
var (
	ErrBracketTableEmpty      = errors.New("bracket table is empty")
	ErrBracketTableGap        = errors.New("bracket table has a gap or overlap")
	ErrBracketTableNotOpen    = errors.New("last bracket row must be open-ended")
	ErrNonPositiveUMA         = errors.New("UMA daily value must be positive")
	ErrNonPositiveCap         = errors.New("SDI cap multiple must be positive")
	ErrNegativeRate           = errors.New("contribution rate cannot be negative")
	ErrNegativeRiskPremium    = errors.New("risk premium cannot be negative")
	ErrNonPositiveMinimumWage = errors.New("minimum wage must be positive")
)
