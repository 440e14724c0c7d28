package output

import (
	"fmt"
	"os"

	"github.com/nominamx/nomina/internal/domain"
)

// Formatter renders a payroll run result in one output format.
type Formatter interface {
	Name() string
	Format(run *domain.PayrollRunResult) ([]byte, error)
}

var formatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// GenerateReport formats a run and writes it to stdout.
func GenerateReport(run *domain.PayrollRunResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported output format: %s", format)
	}
	data, err := f.Format(run)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
