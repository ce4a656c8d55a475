package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the slab tables, surcharge tiers and deduction caps in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list, _ := cmd.Flags().GetBool("list"); list {
				for _, fy := range config.AvailableFiscalYears() {
					fmt.Fprintln(out, fy)
				}
				return nil
			}

			rules, err := loadRuleSet(cmd)
			if err != nil {
				return err
			}

			if format, _ := cmd.Flags().GetString("format"); format == "yaml" {
				data, err := yaml.Marshal(rules)
				if err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
				_, err = out.Write(data)
				return err
			}
			writeRules(out, rules)
			return nil
		},
	}

	cmd.Flags().Bool("list", false, "List the built-in fiscal years")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, yaml)")
	return cmd
}

func writeRules(w io.Writer, rules *domain.RuleSet) {
	fmt.Fprintf(w, "%s\n", rules.Metadata.Description)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Health & Education Cess: %s\n", compare.FormatRate(rules.CessRate))

	old := rules.OldRegime
	fmt.Fprintln(w, "\nOLD REGIME")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Standard deduction: %s\n", compare.FormatRupees(old.StandardDeduction))
	fmt.Fprintf(w, "Rebate u/s 87A:     %s\n", rebateText(old.Rebate))
	for _, age := range domain.AgeCategories {
		slabs, ok := old.SlabsFor(age)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\nSlabs (%s)\n", age.Label())
		writeSlabs(w, slabs)
	}
	fmt.Fprintln(w, "\nSurcharge")
	writeTiers(w, old.SurchargeTiers)
	fmt.Fprintln(w, "\nChapter VI-A deduction caps")
	for _, g := range old.DeductionGroups {
		limit := "no cap"
		if g.Capped() {
			limit = compare.FormatRupees(*g.Cap)
		}
		fmt.Fprintf(w, "  %-22s %s\n", g.Name, limit)
	}

	nr := rules.NewRegime
	fmt.Fprintln(w, "\nNEW REGIME")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Standard deduction: %s\n", compare.FormatRupees(nr.StandardDeduction))
	fmt.Fprintf(w, "Rebate u/s 87A:     %s\n", rebateText(nr.Rebate))
	fmt.Fprintln(w, "\nSlabs (all ages)")
	writeSlabs(w, nr.Slabs)
	fmt.Fprintln(w, "\nSurcharge")
	writeTiers(w, nr.SurchargeTiers)
}

func writeSlabs(w io.Writer, slabs []domain.Slab) {
	lower := decimal.Zero
	for _, s := range slabs {
		upper := "and above"
		if !s.Unbounded() {
			upper = "to " + compare.FormatRupees(*s.UpperBound)
		}
		fmt.Fprintf(w, "  %16s %-20s %8s\n", compare.FormatRupees(lower), upper, compare.FormatRate(s.Rate))
		if !s.Unbounded() {
			lower = *s.UpperBound
		}
	}
}

func writeTiers(w io.Writer, tiers []domain.SurchargeTier) {
	lower := decimal.Zero
	for _, t := range tiers {
		upper := "and above"
		if !t.Unbounded() {
			upper = "to " + compare.FormatRupees(*t.Threshold)
		}
		fmt.Fprintf(w, "  %16s %-20s %8s\n", compare.FormatRupees(lower), upper, compare.FormatRate(t.Rate))
		if !t.Unbounded() {
			lower = *t.Threshold
		}
	}
}

func rebateText(r domain.RebateRule) string {
	if r.IsFull() {
		return fmt.Sprintf("full slab tax up to taxable income %s", compare.FormatRupees(r.IncomeLimit))
	}
	return fmt.Sprintf("up to %s when taxable income is at most %s",
		compare.FormatRupees(*r.MaxAmount), compare.FormatRupees(r.IncomeLimit))
}
