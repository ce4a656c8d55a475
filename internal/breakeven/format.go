package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN DEDUCTION\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Section:             %s\n", result.Request.Section))
	sb.WriteString(fmt.Sprintf("Gross Salary:        %s\n", compare.FormatRupees(result.Request.Base.GrossAnnualSalary)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.Outcome == OutcomeFound {
		sb.WriteString(fmt.Sprintf("Extra Deduction:     %s\n", compare.FormatRupees(result.BreakEvenAmount)))
	}
	sb.WriteString(fmt.Sprintf("Remaining Room:      %s\n", tf.formatRoom(result)))
	sb.WriteString(fmt.Sprintf("Old Regime (before): %s\n", compare.FormatRupees(result.BaseOldLiability)))
	sb.WriteString(fmt.Sprintf("Old Regime (after):  %s\n", compare.FormatRupees(result.OldLiability)))
	sb.WriteString(fmt.Sprintf("New Regime:          %s\n", compare.FormatRupees(result.NewLiability)))

	return sb.String()
}

// FormatMultiSection formats results from every deduction group
func (tf *TableFormatter) FormatMultiSection(result *MultiSectionResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN BY DEDUCTION SECTION\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %-16s %18s %18s %12s\n",
		"Section", "Outcome", "Extra Deduction", "Room", "Iterations"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		extra := "-"
		if res.Outcome == OutcomeFound {
			extra = compare.FormatRupees(res.BreakEvenAmount)
		}
		sb.WriteString(fmt.Sprintf("%-12s %-16s %18s %18s %12d\n",
			res.Request.Section,
			res.Outcome,
			extra,
			tf.formatRoom(&res),
			res.Iterations))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMultiSection formats multi-section results as JSON
func (jf *JSONFormatter) FormatMultiSection(result *MultiSectionResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(result *Result) string {
	switch result.Outcome {
	case OutcomeAlreadyFavoured:
		return "✓ Old regime already favoured"
	case OutcomeUnreachable:
		return "✗ Not reachable within the section's room"
	}
	if result.Success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatRoom(result *Result) string {
	if !result.Capped {
		return "uncapped"
	}
	return compare.FormatRupees(decimal.Max(result.Room, decimal.Zero))
}
