package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trialsize/app"
	"trialsize/internal"
	"trialsize/internal/analysis/power"
	"trialsize/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliOptions are the persistent flags shared by every command
type cliOptions struct {
	criticalValues string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "trialsize",
		Short:         "Compare clinical trial sample sizes across the Doi, Ito and Andrews methods",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.criticalValues, "critical-values",
		getEnv("CRITICAL_VALUES", config.CriticalValuesFixed),
		"Critical value source: fixed (1.96/0.84) or derived (from alpha and power)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", getEnv("LOG_LEVEL", "WARN"),
		"Log level: ERROR, WARN, INFO, DEBUG or TRACE")

	rootCmd.AddCommand(
		newCalcCmd(opts),
		newSweepCmd(opts),
		newReferencesCmd(),
		newFieldsCmd(),
	)

	return rootCmd
}

// newCalculator builds the service for one invocation; logs go to stderr
func newCalculator(cmd *cobra.Command, opts *cliOptions) (*app.CalculatorService, error) {
	source, ok := power.SourceByName(opts.criticalValues)
	if !ok {
		return nil, fmt.Errorf("--critical-values must be %q or %q, got %q",
			config.CriticalValuesFixed, config.CriticalValuesDerived, opts.criticalValues)
	}
	logger := internal.NewLoggerTo(cmd.ErrOrStderr(), internal.ParseLogLevel(opts.logLevel))
	return app.NewCalculatorService(source, logger), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
