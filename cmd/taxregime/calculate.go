package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compare both regimes for one taxpayer",
		Long: `Compute the tax liability under the old and new regimes and recommend the cheaper one.

Examples:
  taxregime calculate --salary 1500000 --deduction 80C=150000 --deduction 80D=25000
  taxregime calculate --input taxpayer.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			formatter := compare.GetFormatterByName(formatName)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", formatName, strings.Join(compare.FormatterNames(), ", "))
			}

			parsed, err := requestFromFlags(cmd, true)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			report, err := compare.NewCompareEngine(engine).Compare(parsed.Request, parsed.Warnings)
			if err != nil {
				return err
			}
			out, err := formatter.Format(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}

	addRequestFlags(cmd)
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, yaml)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a taxpayer input file against the rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRuleSet(cmd)
			if err != nil {
				return err
			}
			parsed, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s is valid for FY %s\n", args[0], rules.Metadata.FiscalYear)
			for _, w := range parsed.Warnings {
				fmt.Fprintf(out, "  warning: %s\n", w)
			}
			return nil
		},
	}
}
