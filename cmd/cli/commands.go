package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"trialsize/domain/samplesize"
	"trialsize/internal/container"
	"trialsize/internal/references"
	"trialsize/models"
)

func newCalcCmd(opts *cliOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate sample sizes for one study design",
		Long: `Calculate initial, adjusted and per-group sample sizes for all three methods.
Every flag defaults to the calculator's reference design.

Example: trialsize calc --sd 2.5 --dropout 15 --interim=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calculator, err := newCalculator(cmd, opts)
			if err != nil {
				return err
			}

			raw, err := rawFromFlags(cmd)
			if err != nil {
				return err
			}

			calc, err := calculator.Calculate(cmd.Context(), raw)
			if err != nil {
				if verr, ok := samplesize.AsValidationError(err); ok {
					printFieldErrors(cmd.ErrOrStderr(), verr.Fields)
					return fmt.Errorf("invalid parameters")
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), models.NewCalculationResponse(calc))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCalculation(calc))
			return nil
		},
	}

	for _, f := range samplesize.Fields {
		if f.Kind == samplesize.KindBoolean {
			def, _ := strconv.ParseBool(f.Default)
			cmd.Flags().Bool(f.Flag, def, f.Help)
			continue
		}
		cmd.Flags().String(f.Flag, f.Default, f.Help)
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the calculation as JSON")

	return cmd
}

// rawFromFlags reads the nine field flags as text
func rawFromFlags(cmd *cobra.Command) (samplesize.RawParameters, error) {
	raw := make(samplesize.RawParameters, len(samplesize.Fields))
	for _, f := range samplesize.Fields {
		if f.Kind == samplesize.KindBoolean {
			v, err := cmd.Flags().GetBool(f.Flag)
			if err != nil {
				return nil, err
			}
			raw[f.Key] = strconv.FormatBool(v)
			continue
		}
		v, err := cmd.Flags().GetString(f.Flag)
		if err != nil {
			return nil, err
		}
		raw[f.Key] = v
	}
	return raw, nil
}

func newSweepCmd(opts *cliOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sweep FILE",
		Short: "Calculate every scenario row of an xlsx or csv workbook",
		Long: `Read what-if scenarios from the first sheet of an xlsx file or from a csv file.
The header row names fields by key, flag or label; an optional "scenario" column
names each row. Missing columns and empty cells take the defaults.

Example: trialsize sweep scenarios.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calculator, err := newCalculator(cmd, opts)
			if err != nil {
				return err
			}

			scenarios, err := container.ScenarioReaderFor(args[0]).ReadScenarios(cmd.Context())
			if err != nil {
				return err
			}

			report, err := calculator.Sweep(cmd.Context(), args[0], scenarios)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), models.NewSweepResponse(report))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSweep(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the manifest and outcomes as JSON")
	return cmd
}

func newReferencesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "references",
		Short: "Print the methodological caveats and bibliography",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), references.Markdown())
			return err
		},
	}
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the calculator inputs with their flags and defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderFields(samplesize.Fields))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
