package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Name returns the registry name
func (cf *CSVFormatter) Name() string { return "csv" }

var csvFields = []string{
	"gross_income",
	"standard_deduction",
	"professional_tax",
	"house_property_loss",
	"gross_total_income",
	"chapter_via_deductions",
	"taxable_income",
	"base_tax",
	"rebate",
	"tax_after_rebate",
	"surcharge",
	"marginal_relief",
	"cess",
	"tax_liability",
	"effective_rate",
	"marginal_rate",
}

// Format generates one row per breakdown field with both regimes as columns
func (cf *CSVFormatter) Format(report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("no comparison to format")
	}
	result := report.Result

	rows := [][]string{{"field", "old_regime", "new_regime"}}
	oldValues := cf.breakdownValues(result.OldRegime)
	newValues := cf.breakdownValues(result.NewRegime)
	for i, field := range csvFields {
		rows = append(rows, []string{field, oldValues[i], newValues[i]})
	}
	rows = append(rows,
		[]string{"recommended_regime", string(result.RecommendedRegime), string(result.RecommendedRegime)},
		[]string{"tax_savings", result.TaxSavings.StringFixed(2), result.TaxSavings.StringFixed(2)},
	)
	return writeCSV(rows)
}

// FormatSweep generates one row per swept salary
func (cf *CSVFormatter) FormatSweep(analysis *domain.SalarySensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no sweep to format")
	}
	rows := [][]string{{"gross_salary", "old_liability", "new_liability", "recommended_regime", "tax_savings"}}
	for _, p := range analysis.Points {
		rows = append(rows, []string{
			p.GrossSalary.StringFixed(2),
			p.OldLiability.StringFixed(2),
			p.NewLiability.StringFixed(2),
			string(p.RecommendedRegime),
			p.TaxSavings.StringFixed(2),
		})
	}
	return writeCSV(rows)
}

// breakdownValues lists b's fields in csvFields order
func (cf *CSVFormatter) breakdownValues(b domain.TaxBreakdown) []string {
	return []string{
		b.GrossIncome.StringFixed(2),
		b.StandardDeduction.StringFixed(2),
		b.ProfessionalTax.StringFixed(2),
		b.HousePropertyLoss.StringFixed(2),
		b.GrossTotalIncome.StringFixed(2),
		b.ChapterVIADeductions.StringFixed(2),
		b.TaxableIncome.StringFixed(2),
		b.BaseTax.StringFixed(2),
		b.Rebate.StringFixed(2),
		b.TaxAfterRebate.StringFixed(2),
		b.Surcharge.StringFixed(2),
		b.MarginalRelief.StringFixed(2),
		b.Cess.StringFixed(2),
		b.TaxLiability.StringFixed(2),
		b.EffectiveRate.StringFixed(6),
		b.MarginalRate.StringFixed(4),
	}
}

func writeCSV(rows [][]string) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}
