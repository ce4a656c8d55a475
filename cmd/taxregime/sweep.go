package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/spf13/cobra"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare the regimes across a range of salaries",
		Long: `Recompute the comparison for every salary from --from to --to in --step
increments, keeping deductions and other inputs fixed, and report where the
recommendation changes.

Example:
  taxregime sweep --from 500000 --to 3000000 --step 250000 --deduction 80C=150000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			formatter := compare.GetFormatterByName(formatName)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", formatName, strings.Join(compare.FormatterNames(), ", "))
			}

			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			step, _ := cmd.Flags().GetString("step")
			var sweep domain.SalarySweep
			var err error
			if sweep.From, err = domain.ParseAmount("from", from); err != nil {
				return err
			}
			if sweep.To, err = domain.ParseAmount("to", to); err != nil {
				return err
			}
			if sweep.Step, err = domain.ParseAmount("step", step); err != nil {
				return err
			}

			parsed, err := requestFromFlags(cmd, false)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			analysis, err := calculation.NewSensitivityAnalyzer(engine).SweepSalary(cmd.Context(), parsed.Request, sweep)
			if err != nil {
				return err
			}
			out, err := formatter.FormatSweep(analysis)
			if err != nil {
				return fmt.Errorf("failed to format sweep: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}

	addRequestFlags(cmd)
	cmd.Flags().String("from", "500000", "First gross salary")
	cmd.Flags().String("to", "3000000", "Last gross salary")
	cmd.Flags().String("step", "250000", "Salary increment")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, yaml)")
	return cmd
}
