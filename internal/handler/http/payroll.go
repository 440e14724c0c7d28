package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nominamx/nomina/internal/calculation"
	"github.com/nominamx/nomina/internal/config"
	"github.com/nominamx/nomina/internal/domain"
	"github.com/nominamx/nomina/internal/handler/http/response"
)

// PayrollHandler exposes the payroll calculators over HTTP. The handler
// is stateless: the regulatory config is loaded once at startup and an
// engine is built per request around the company's risk premium.
type PayrollHandler struct {
	regulatory *domain.RegulatoryConfig
	parser     *config.InputParser
}

// NewPayrollHandler creates a handler bound to a law-year config.
func NewPayrollHandler(reg *domain.RegulatoryConfig) *PayrollHandler {
	return &PayrollHandler{
		regulatory: reg,
		parser:     config.NewInputParser(),
	}
}

// CalculateRun runs a full payroll for the posted company, period and
// employees and returns the aggregated run result.
func (h *PayrollHandler) CalculateRun(w http.ResponseWriter, r *http.Request) {
	var input domain.PayrollInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if err := h.parser.ValidatePayrollInput(&input); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	engine := calculation.NewPayrollEngine(h.regulatory, input.Company.RiskPremiumPct)
	run, err := engine.RunAll(&input)
	if err != nil {
		handleError(w, err)
		return
	}
	response.Success(w, run)
}

// IMSSRequest is the body for the standalone quota endpoint.
type IMSSRequest struct {
	SDI                 decimal.Decimal `json:"sdi"`
	DaysToContribute    int             `json:"days_to_contribute"`
	ApplyExcessOver3UMA *bool           `json:"apply_excess_over_3uma,omitempty"`
	RiskPremiumPct      decimal.Decimal `json:"risk_premium_pct,omitempty"`
}

// CalculateIMSS computes the nine-line quota breakdown for a given SDI.
func (h *PayrollHandler) CalculateIMSS(w http.ResponseWriter, r *http.Request) {
	var req IMSSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.DaysToContribute == 0 {
		req.DaysToContribute = 15
	}
	applyExcess := true
	if req.ApplyExcessOver3UMA != nil {
		applyExcess = *req.ApplyExcessOver3UMA
	}

	calc := calculation.NewIMSSCalculator(h.regulatory, req.RiskPremiumPct)
	breakdown, err := calc.CalculateQuotas(req.SDI, req.DaysToContribute, applyExcess)
	if err != nil {
		handleError(w, err)
		return
	}
	response.Success(w, breakdown)
}

// ISRRequest is the body for the standalone withholding endpoint.
type ISRRequest struct {
	TaxableBase  decimal.Decimal `json:"taxable_base"`
	ApplySubsidy *bool           `json:"apply_subsidy,omitempty"`
}

// CalculateISR computes the biweekly withholding for a taxable base.
func (h *PayrollHandler) CalculateISR(w http.ResponseWriter, r *http.Request) {
	var req ISRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	applySubsidy := true
	if req.ApplySubsidy != nil {
		applySubsidy = *req.ApplySubsidy
	}

	calc := calculation.NewISRCalculator(h.regulatory)
	result, err := calc.CalculateWithholding(req.TaxableBase, applySubsidy)
	if err != nil {
		handleError(w, err)
		return
	}
	response.Success(w, result)
}

// Regulatory returns the active law-year configuration.
func (h *PayrollHandler) Regulatory(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.regulatory)
}

// handleError maps domain errors to HTTP responses.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNonPositiveDailyWage),
		errors.Is(err, domain.ErrNegativeSDI),
		errors.Is(err, domain.ErrNonPositiveDays),
		errors.Is(err, domain.ErrNegativeTaxableBase),
		errors.Is(err, domain.ErrMissingEmployeeName),
		errors.Is(err, domain.ErrInvalidIncidentType),
		errors.Is(err, domain.ErrNegativeOvertime),
		errors.Is(err, domain.ErrInvalidPeriod):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, "An unexpected error occurred")
	}
}
