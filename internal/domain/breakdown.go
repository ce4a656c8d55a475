package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBreakdown is the step-by-step result of one regime pipeline.
// Old-regime-only adjustments are zero for the new regime.
type TaxBreakdown struct {
	Regime      Regime      `yaml:"regime" json:"regime"`
	AgeCategory AgeCategory `yaml:"age_category,omitempty" json:"age_category,omitempty"`

	GrossIncome       decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`

	// Old regime adjustments
	ProfessionalTax      decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	HousePropertyLoss    decimal.Decimal `yaml:"house_property_loss" json:"house_property_loss"`
	GrossTotalIncome     decimal.Decimal `yaml:"gross_total_income" json:"gross_total_income"`
	ChapterVIADeductions decimal.Decimal `yaml:"chapter_via_deductions" json:"chapter_via_deductions"`
	DeductionLines       []DeductionLine `yaml:"deduction_lines,omitempty" json:"deduction_lines,omitempty"`

	TaxableIncome  decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	BaseTax        decimal.Decimal `yaml:"base_tax" json:"base_tax"`
	Rebate         decimal.Decimal `yaml:"rebate" json:"rebate"`
	TaxAfterRebate decimal.Decimal `yaml:"tax_after_rebate" json:"tax_after_rebate"`
	Surcharge      decimal.Decimal `yaml:"surcharge" json:"surcharge"`
	MarginalRelief decimal.Decimal `yaml:"marginal_relief" json:"marginal_relief"`
	Cess           decimal.Decimal `yaml:"cess" json:"cess"`
	TaxLiability   decimal.Decimal `yaml:"tax_liability" json:"tax_liability"`
	EffectiveRate  decimal.Decimal `yaml:"effective_rate" json:"effective_rate"`
	MarginalRate   decimal.Decimal `yaml:"marginal_rate" json:"marginal_rate"` // slab rate on the last rupee of taxable income
}

// ComparisonResult holds both regime breakdowns and the recommendation
type ComparisonResult struct {
	FiscalYear             string          `yaml:"fiscal_year" json:"fiscal_year"`
	CalculationAssumptions string          `yaml:"calculation_assumptions" json:"calculation_assumptions"`
	OldRegime              TaxBreakdown    `yaml:"old_regime" json:"old_regime"`
	NewRegime              TaxBreakdown    `yaml:"new_regime" json:"new_regime"`
	RecommendedRegime      Regime          `yaml:"recommended_regime" json:"recommended_regime"`
	TaxSavings             decimal.Decimal `yaml:"tax_savings" json:"tax_savings"`
}

// Breakdown returns the breakdown for the given regime
func (c *ComparisonResult) Breakdown(r Regime) TaxBreakdown {
	if r == RegimeOld {
		return c.OldRegime
	}
	return c.NewRegime
}

// Recommended returns the breakdown of the recommended regime
func (c *ComparisonResult) Recommended() TaxBreakdown {
	return c.Breakdown(c.RecommendedRegime)
}
