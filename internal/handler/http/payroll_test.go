package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominamx/nomina/internal/domain"
	"github.com/nominamx/nomina/internal/handler/http/response"
)

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

func doJSON(t *testing.T, handlerFunc http.HandlerFunc, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func newTestHandler() *PayrollHandler {
	return NewPayrollHandler(domain.NewRegulatoryConfig2024())
}

func TestCalculateISR(t *testing.T) {
	status, env := doJSON(t, newTestHandler().CalculateISR, `{"taxable_base":"3000.00"}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var result domain.ISRResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "175.49", result.ComputedISR.StringFixed(2))
	assert.Equal(t, "178.20", result.Subsidy.StringFixed(2))
	assert.Equal(t, "0.00", result.WithheldISR.StringFixed(2))
}

func TestCalculateISR_SubsidyDisabled(t *testing.T) {
	status, env := doJSON(t, newTestHandler().CalculateISR, `{"taxable_base":"3000.00","apply_subsidy":false}`)
	require.Equal(t, http.StatusOK, status)

	var result domain.ISRResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "175.49", result.WithheldISR.StringFixed(2))
}

func TestCalculateISR_NegativeBase(t *testing.T) {
	status, env := doJSON(t, newTestHandler().CalculateISR, `{"taxable_base":"-1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", env.Error.Code)
}

func TestCalculateISR_MalformedBody(t *testing.T) {
	status, env := doJSON(t, newTestHandler().CalculateISR, `{"taxable_base":`)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestCalculateIMSS(t *testing.T) {
	// Days default to the biweekly 15 when omitted.
	status, env := doJSON(t, newTestHandler().CalculateIMSS, `{"sdi":"314.79"}`)
	require.Equal(t, http.StatusOK, status)

	var breakdown domain.IMSSQuotaBreakdown
	require.NoError(t, json.Unmarshal(env.Data, &breakdown))
	assert.Equal(t, 15, breakdown.Info.Days)
	assert.Equal(t, "813.55", breakdown.Totals.Employer.StringFixed(2))
	assert.Equal(t, "112.14", breakdown.Totals.Employee.StringFixed(2))
}

func TestCalculateIMSS_NegativeSDI(t *testing.T) {
	status, env := doJSON(t, newTestHandler().CalculateIMSS, `{"sdi":"-10"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, domain.ErrNegativeSDI.Error())
}

func TestCalculateRun(t *testing.T) {
	body := `{
		"company": {"name": "Taller Norte"},
		"period": {"start": "2024-01-01T00:00:00Z", "days": 15},
		"employees": [
			{
				"employee": {"name": "Luz Hernández", "daily_wage": "248.93"},
				"attendance": [
					{"date": "2024-01-01T00:00:00Z"}, {"date": "2024-01-02T00:00:00Z"},
					{"date": "2024-01-03T00:00:00Z"}, {"date": "2024-01-04T00:00:00Z"},
					{"date": "2024-01-05T00:00:00Z"}, {"date": "2024-01-08T00:00:00Z"},
					{"date": "2024-01-09T00:00:00Z"}, {"date": "2024-01-10T00:00:00Z"},
					{"date": "2024-01-11T00:00:00Z"}, {"date": "2024-01-12T00:00:00Z"},
					{"date": "2024-01-15T00:00:00Z"}, {"date": "2024-01-16T00:00:00Z"},
					{"date": "2024-01-17T00:00:00Z"}, {"date": "2024-01-18T00:00:00Z"},
					{"date": "2024-01-19T00:00:00Z"}
				]
			}
		]
	}`
	status, env := doJSON(t, newTestHandler().CalculateRun, body)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var run domain.PayrollRunResult
	require.NoError(t, json.Unmarshal(env.Data, &run))
	assert.NotEmpty(t, run.RunID)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "3391.12", run.Results[0].Totals.Net.StringFixed(2))
	assert.Equal(t, "3391.12", run.TotalNet.StringFixed(2))
}

func TestCalculateRun_ValidationFailure(t *testing.T) {
	body := `{
		"company": {"name": "Taller Norte"},
		"period": {"start": "2024-01-01T00:00:00Z", "days": 15},
		"employees": [
			{"employee": {"name": "", "daily_wage": "248.93"}}
		]
	}`
	status, env := doJSON(t, newTestHandler().CalculateRun, body)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, domain.ErrMissingEmployeeName.Error())
}

func TestRegulatoryEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/regulatory", nil)
	rec := httptest.NewRecorder()
	newTestHandler().Regulatory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	var reg domain.RegulatoryConfig
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.Equal(t, 2024, reg.Metadata.DataYear)
	assert.True(t, reg.UMADaily.Equal(decimal.RequireFromString("108.57")))
}
