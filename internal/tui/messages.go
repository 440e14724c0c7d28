package tui

import "github.com/nominamx/nomina/internal/domain"

// RunCompletedMsg is emitted when the payroll run for the loaded input
// has finished.
type RunCompletedMsg struct {
	Run *domain.PayrollRunResult
}

// ErrorMsg carries a fatal load or calculation error into the model.
type ErrorMsg struct {
	Err error
}
