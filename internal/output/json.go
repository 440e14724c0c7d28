package output

import (
	"encoding/json"

	"github.com/nominamx/nomina/internal/domain"
)

// JSONFormatter emits the full run result as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(run *domain.PayrollRunResult) ([]byte, error) {
	return json.MarshalIndent(run, "", "  ")
}
