package domain

import (
	"github.com/shopspring/decimal"
)

// SalarySweep describes a range of gross salaries to evaluate
type SalarySweep struct {
	From decimal.Decimal `yaml:"from" json:"from"`
	To   decimal.Decimal `yaml:"to" json:"to"`
	Step decimal.Decimal `yaml:"step" json:"step"`
}

// SweepPoint is the comparison outcome at one salary
type SweepPoint struct {
	GrossSalary       decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	OldLiability      decimal.Decimal `yaml:"old_liability" json:"old_liability"`
	NewLiability      decimal.Decimal `yaml:"new_liability" json:"new_liability"`
	RecommendedRegime Regime          `yaml:"recommended_regime" json:"recommended_regime"`
	TaxSavings        decimal.Decimal `yaml:"tax_savings" json:"tax_savings"`
}

// SalarySensitivityAnalysis is the result of a salary sweep.
// Crossovers lists the salaries at which the recommendation flips.
type SalarySensitivityAnalysis struct {
	FiscalYear string            `yaml:"fiscal_year" json:"fiscal_year"`
	Sweep      SalarySweep       `yaml:"sweep" json:"sweep"`
	Points     []SweepPoint      `yaml:"points" json:"points"`
	Crossovers []decimal.Decimal `yaml:"crossovers" json:"crossovers"`
}
