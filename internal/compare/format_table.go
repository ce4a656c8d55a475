package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Name returns the registry name
func (tf *TableFormatter) Name() string { return "table" }

type breakdownRow struct {
	label string
	value func(b domain.TaxBreakdown) decimal.Decimal
}

var breakdownRows = []breakdownRow{
	{"Gross Income", func(b domain.TaxBreakdown) decimal.Decimal { return b.GrossIncome }},
	{"Standard Deduction", func(b domain.TaxBreakdown) decimal.Decimal { return b.StandardDeduction }},
	{"Professional Tax", func(b domain.TaxBreakdown) decimal.Decimal { return b.ProfessionalTax }},
	{"House Property Loss (24B)", func(b domain.TaxBreakdown) decimal.Decimal { return b.HousePropertyLoss }},
	{"Gross Total Income", func(b domain.TaxBreakdown) decimal.Decimal { return b.GrossTotalIncome }},
	{"Chapter VI-A Deductions", func(b domain.TaxBreakdown) decimal.Decimal { return b.ChapterVIADeductions }},
	{"Taxable Income", func(b domain.TaxBreakdown) decimal.Decimal { return b.TaxableIncome }},
	{"Tax on Slabs", func(b domain.TaxBreakdown) decimal.Decimal { return b.BaseTax }},
	{"Rebate u/s 87A", func(b domain.TaxBreakdown) decimal.Decimal { return b.Rebate }},
	{"Tax after Rebate", func(b domain.TaxBreakdown) decimal.Decimal { return b.TaxAfterRebate }},
	{"Surcharge", func(b domain.TaxBreakdown) decimal.Decimal { return b.Surcharge }},
	{"Marginal Relief", func(b domain.TaxBreakdown) decimal.Decimal { return b.MarginalRelief }},
	{"Health & Education Cess", func(b domain.TaxBreakdown) decimal.Decimal { return b.Cess }},
}

const (
	labelWidth = 28
	numWidth   = 20
)

// Format generates a side-by-side table of both regimes
func (tf *TableFormatter) Format(report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("no comparison to format")
	}
	result := report.Result
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("INCOME TAX REGIME COMPARISON (FY %s)\n", result.FiscalYear))
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	sb.WriteString(fmt.Sprintf("Rules:       %s\n", result.CalculationAssumptions))
	sb.WriteString(fmt.Sprintf("Age:         %s\n", report.Input.AgeCategory.Label()))
	sb.WriteString(fmt.Sprintf("Salaried:    %s\n", yesNo(report.Input.IsSalaried)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "Old Regime", numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", 70) + "\n")
	for _, row := range breakdownRows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			labelWidth, row.label,
			numWidth, FormatRupees(row.value(result.OldRegime)),
			numWidth, FormatRupees(row.value(result.NewRegime))))
	}
	sb.WriteString(strings.Repeat("-", 70) + "\n")
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Total Tax Liability",
		numWidth, FormatRupees(result.OldRegime.TaxLiability),
		numWidth, FormatRupees(result.NewRegime.TaxLiability)))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Effective Rate",
		numWidth, FormatRate(result.OldRegime.EffectiveRate),
		numWidth, FormatRate(result.NewRegime.EffectiveRate)))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Marginal Slab Rate",
		numWidth, FormatRate(result.OldRegime.MarginalRate),
		numWidth, FormatRate(result.NewRegime.MarginalRate)))
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	sb.WriteString(fmt.Sprintf("Recommended: %s regime (saves %s)\n",
		strings.ToUpper(string(result.RecommendedRegime)), FormatRupees(result.TaxSavings)))

	// Deduction detail
	if len(result.OldRegime.DeductionLines) > 0 {
		sb.WriteString("\nCHAPTER VI-A DEDUCTIONS (OLD REGIME)\n")
		sb.WriteString(strings.Repeat("-", 70) + "\n")
		for _, line := range result.OldRegime.DeductionLines {
			sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
				labelWidth, truncate(line.Group, labelWidth),
				numWidth, FormatRupees(line.Claimed),
				numWidth, FormatRupees(line.Allowed)))
		}
	}

	writeList(&sb, "RECOMMENDATIONS", report.Recommendations)
	writeList(&sb, "WARNINGS", report.Warnings)

	return sb.String(), nil
}

// FormatSweep generates one row per swept salary
func (tf *TableFormatter) FormatSweep(analysis *domain.SalarySensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no sweep to format")
	}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("SALARY SWEEP (FY %s)\n", analysis.FiscalYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%18s %18s %18s %6s %16s\n", "Gross Salary", "Old Regime", "New Regime", "Best", "Savings"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, p := range analysis.Points {
		sb.WriteString(fmt.Sprintf("%18s %18s %18s %6s %16s\n",
			FormatRupees(p.GrossSalary),
			FormatRupees(p.OldLiability),
			FormatRupees(p.NewLiability),
			p.RecommendedRegime,
			FormatRupees(p.TaxSavings)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(analysis.Crossovers) == 0 {
		sb.WriteString("No crossover in this range\n")
	} else {
		labels := make([]string, 0, len(analysis.Crossovers))
		for _, c := range analysis.Crossovers {
			labels = append(labels, FormatRupeesShort(c))
		}
		sb.WriteString(fmt.Sprintf("Recommendation changes at: %s\n", strings.Join(labels, ", ")))
	}
	return sb.String(), nil
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(result *domain.ComparisonResult) string {
	return fmt.Sprintf("Old: %s | New: %s | Best: %s (saves %s)",
		FormatRupees(result.OldRegime.TaxLiability),
		FormatRupees(result.NewRegime.TaxLiability),
		result.RecommendedRegime,
		FormatRupees(result.TaxSavings))
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + heading + "\n")
	sb.WriteString(strings.Repeat("-", 70) + "\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s\n", item))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate truncates a string to maxLen
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
