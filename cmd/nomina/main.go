package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/nominamx/nomina/internal/calculation"
	"github.com/nominamx/nomina/internal/config"
	"github.com/nominamx/nomina/internal/domain"
	appHTTP "github.com/nominamx/nomina/internal/handler/http"
	"github.com/nominamx/nomina/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "nomina %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// loadRegulatory resolves the law-year config: an explicit flag value, a
// regulatory.yaml next to the input, or the compiled-in defaults.
func loadRegulatory(regulatoryFile string) (*domain.RegulatoryConfig, error) {
	if regulatoryFile == "" && fileExists("regulatory.yaml") {
		regulatoryFile = "regulatory.yaml"
	}
	if regulatoryFile == "" {
		return domain.NewRegulatoryConfig2024(), nil
	}
	fmt.Printf("Loading regulatory config from: %s\n", regulatoryFile)
	return config.NewInputParser().LoadRegulatoryFromFile(regulatoryFile)
}

var rootCmd = &cobra.Command{
	Use:   "nomina",
	Short: "Mexican payroll calculator CLI",
	Long:  "Biweekly payroll calculator: SDI/SBC derivation, IMSS quotas and ISR withholding",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Run the payroll for a company input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
		reg, err := loadRegulatory(regulatoryFile)
		if err != nil {
			log.Fatal(err)
		}

		parser := config.NewInputParser()
		input, err := parser.LoadPayrollInputFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		engine := calculation.NewPayrollEngine(reg, input.Company.RiskPremiumPct)
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		engine.Debug = debugMode

		run, err := engine.RunAll(input)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if f := output.GetFormatterByName(outputFormat); f != nil {
			data, err := f.Format(run)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(string(data))
		} else {
			log.Fatalf("unsupported output format: %s", outputFormat)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a payroll input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadPayrollInputFromFile(inputFile); err != nil {
			log.Fatal(err)
		}

		regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
		if regulatoryFile != "" {
			if _, err := parser.LoadRegulatoryFromFile(regulatoryFile); err != nil {
				log.Fatal(err)
			}
		}

		fmt.Printf("Configuration file %s is valid\n", inputFile)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the payroll calculators over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			log.Fatal(err)
		}

		regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
		if regulatoryFile == "" {
			regulatoryFile = cfg.RegulatoryFile
		}
		reg, err := loadRegulatory(regulatoryFile)
		if err != nil {
			log.Fatal(err)
		}

		handler := appHTTP.NewPayrollHandler(reg)
		router := appHTTP.NewRouter(cfg, handler)

		addr := fmt.Sprintf(":%d", cfg.Port)
		fmt.Printf("Listening on %s (law year %d)\n", addr, reg.Metadata.DataYear)
		if err := http.ListenAndServe(addr, router); err != nil {
			log.Fatal(err)
		}
	},
}

func main() {
	calculateCmd.Flags().String("format", "console", "Output format (console, csv, json)")
	calculateCmd.Flags().String("regulatory-config", "", "Path to regulatory configuration file")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output")
	validateCmd.Flags().String("regulatory-config", "", "Path to regulatory configuration file")
	serveCmd.Flags().String("regulatory-config", "", "Path to regulatory configuration file")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
