package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Find the extra deduction that makes the old regime worthwhile",
		Long: `Find the smallest additional Chapter VI-A deduction at which the old regime
costs no more than the new regime. Without --section every deduction group is tried.

Examples:
  taxregime break-even --salary 1900000 --section 80C
  taxregime break-even --input taxpayer.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (available: json, table)", format)
			}

			parsed, err := requestFromFlags(cmd, true)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			options := breakeven.DefaultSolverOptions()
			if cmd.Flags().Changed("resolution") {
				resolution, _ := cmd.Flags().GetString("resolution")
				if options.Resolution, err = domain.ParseAmount("resolution", resolution); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("max-iterations") {
				options.MaxIterations, _ = cmd.Flags().GetInt("max-iterations")
			}
			solver := breakeven.NewSolver(engine, options)

			tf := &breakeven.TableFormatter{}
			jf := &breakeven.JSONFormatter{Pretty: true}
			var out string

			sectionFlag, _ := cmd.Flags().GetString("section")
			if sectionFlag == "" {
				result, err := solver.SolveAllSections(cmd.Context(), parsed.Request)
				if err != nil {
					return err
				}
				if format == "json" {
					if out, err = jf.FormatMultiSection(result); err != nil {
						return err
					}
				} else {
					out = tf.FormatMultiSection(result)
				}
			} else {
				section, ok := domain.ParseSection(sectionFlag)
				if !ok {
					return fmt.Errorf("unknown deduction section %q", sectionFlag)
				}
				result, err := solver.Solve(cmd.Context(), breakeven.Request{
					Base:          parsed.Request,
					Section:       section,
					MaxIterations: options.MaxIterations,
					Resolution:    options.Resolution,
				})
				if err != nil {
					return err
				}
				if format == "json" {
					if out, err = jf.Format(result); err != nil {
						return err
					}
				} else {
					out = tf.Format(result)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}

	addRequestFlags(cmd)
	cmd.Flags().String("section", "", "Section to claim more under, e.g. 80C (default: every group)")
	cmd.Flags().String("resolution", "1", "Smallest amount step in rupees")
	cmd.Flags().Int("max-iterations", 100, "Maximum bisection steps")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
