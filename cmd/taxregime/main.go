package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/logging"
	"github.com/spf13/cobra"
)

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
			fmt.Fprintf(cmd.OutOrStdout(), "taxregime %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taxregime",
		Short: "Indian income tax regime comparator",
		Long: `Compare the old (deduction-based) and new (concessional) income tax regimes
for a salaried individual and recommend the cheaper one.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
				slog.SetDefault(logging.New(cmd.ErrOrStderr(), slog.LevelDebug))
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Log calculation steps at debug level")
	rootCmd.PersistentFlags().String("rules", "", "Rule set YAML file (default: built-in rules)")
	rootCmd.PersistentFlags().String("fiscal-year", config.DefaultFiscalYear, "Built-in fiscal year rule set to use")

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(breakEvenCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// loadRuleSet honours --rules before --fiscal-year
func loadRuleSet(cmd *cobra.Command) (*domain.RuleSet, error) {
	if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
		return config.LoadRuleSetFromFile(rulesFile)
	}
	fiscalYear, _ := cmd.Flags().GetString("fiscal-year")
	return config.RuleSetForYear(fiscalYear)
}

// newEngine builds a tax engine that logs through the slog default
func newEngine(cmd *cobra.Command) (*calculation.TaxEngine, error) {
	rules, err := loadRuleSet(cmd)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewTaxEngine(rules)
	engine.SetLogger(logging.NewSlogLogger(slog.Default()))
	return engine, nil
}

func main() {
	logging.Setup()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
