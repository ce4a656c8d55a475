package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// TaxEngine compares the old and new regimes for one taxpayer.
// After construction it holds only read-only rule tables, so a single engine
// may serve concurrent CalculateTax calls. Call SetLogger before sharing it.
type TaxEngine struct {
	Rules   *domain.RuleSet
	OldCalc *OldRegimeCalculator
	NewCalc *NewRegimeCalculator
	Logger  Logger
}

// NewTaxEngine creates an engine for the given rule set
func NewTaxEngine(rules *domain.RuleSet) *TaxEngine {
	return &TaxEngine{
		Rules:   rules,
		OldCalc: NewOldRegimeCalculator(rules),
		NewCalc: NewNewRegimeCalculator(rules),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculators.
// A nil logger installs NopLogger.
func (e *TaxEngine) SetLogger(l Logger) {
	l = orNop(l)
	e.Logger = l
	e.OldCalc.Logger = l
	e.NewCalc.Logger = l
}

// CalculateTax validates the request, runs both regime pipelines and
// recommends the cheaper one. On a validation failure no partial result is
// returned; the error wraps one or more *domain.ValidationError values.
func (e *TaxEngine) CalculateTax(req domain.TaxRequest) (*domain.ComparisonResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	oldBreakdown, err := e.OldCalc.Calculate(req.GrossAnnualSalary, req.AgeCategory, req.Deductions, req.IsSalaried, req.ProfessionalTaxPaid)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}
	newBreakdown := e.NewCalc.Calculate(req.GrossAnnualSalary, req.IsSalaried)

	result := CompareRegimes(oldBreakdown, newBreakdown)
	result.FiscalYear = e.Rules.Metadata.FiscalYear
	result.CalculationAssumptions = e.Rules.Metadata.Description

	orNop(e.Logger).Debugf("recommended %s regime for salary %s (old %s, new %s, savings %s)",
		result.RecommendedRegime, req.GrossAnnualSalary.StringFixed(2),
		oldBreakdown.TaxLiability.StringFixed(2), newBreakdown.TaxLiability.StringFixed(2),
		result.TaxSavings.StringFixed(2))
	return &result, nil
}

// CompareRegimes recommends the regime with the lower liability; the new
// regime wins ties. Savings is the absolute liability difference.
func CompareRegimes(oldBreakdown, newBreakdown domain.TaxBreakdown) domain.ComparisonResult {
	recommended := domain.RegimeOld
	if newBreakdown.TaxLiability.LessThanOrEqual(oldBreakdown.TaxLiability) {
		recommended = domain.RegimeNew
	}
	return domain.ComparisonResult{
		OldRegime:         oldBreakdown,
		NewRegime:         newBreakdown,
		RecommendedRegime: recommended,
		TaxSavings:        oldBreakdown.TaxLiability.Sub(newBreakdown.TaxLiability).Abs(),
	}
}
