package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// Report is a regime comparison together with the input it was computed
// from and the notes gathered along the way.
type Report struct {
	Input           domain.TaxRequest        `yaml:"input" json:"input"`
	Result          *domain.ComparisonResult `yaml:"result" json:"result"`
	Recommendations []string                 `yaml:"recommendations" json:"recommendations"`
	Warnings        []string                 `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// GenerateRecommendations creates plain-language notes from a comparison
func GenerateRecommendations(result *domain.ComparisonResult) []string {
	recommendations := []string{}
	if result == nil {
		return recommendations
	}

	if result.TaxSavings.IsZero() {
		recommendations = append(recommendations,
			"Both regimes cost "+FormatRupees(result.NewRegime.TaxLiability)+"; the new regime needs no deduction proofs")
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Choose the %s regime: it saves %s", result.RecommendedRegime, FormatRupees(result.TaxSavings)))
	}

	// Claims above a cap are wasted under the old regime
	for _, line := range result.OldRegime.DeductionLines {
		if line.Claimed.GreaterThan(line.Allowed) {
			recommendations = append(recommendations,
				fmt.Sprintf("Only %s of the %s claimed under %s is deductible",
					FormatRupees(line.Allowed), FormatRupees(line.Claimed), line.Group))
		}
	}

	for _, b := range []domain.TaxBreakdown{result.OldRegime, result.NewRegime} {
		if b.MarginalRelief.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("%s regime: marginal relief reduced the surcharge by %s",
					title(b.Regime), FormatRupees(b.MarginalRelief)))
		}
		if b.Rebate.IsPositive() && b.TaxAfterRebate.IsZero() {
			recommendations = append(recommendations,
				fmt.Sprintf("%s regime: the Section 87A rebate removes the entire %s of slab tax",
					title(b.Regime), FormatRupees(b.Rebate)))
		}
	}

	return recommendations
}

func title(r domain.Regime) string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
