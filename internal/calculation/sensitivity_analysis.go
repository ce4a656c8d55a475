package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MaxSweepPoints bounds the number of salaries a single sweep evaluates
const MaxSweepPoints = 5000

// SensitivityAnalyzer recomputes the regime comparison across a salary range
type SensitivityAnalyzer struct {
	engine *TaxEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *TaxEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// SweepSalary evaluates base with its gross salary replaced by every value in
// the sweep, keeping all other inputs fixed.
func (sa *SensitivityAnalyzer) SweepSalary(ctx context.Context, base domain.TaxRequest, sweep domain.SalarySweep) (*domain.SalarySensitivityAnalysis, error) {
	salaries, err := sweepValues(sweep)
	if err != nil {
		return nil, err
	}

	analysis := &domain.SalarySensitivityAnalysis{
		FiscalYear: sa.engine.Rules.Metadata.FiscalYear,
		Sweep:      sweep,
		Points:     make([]domain.SweepPoint, 0, len(salaries)),
	}

	for i, salary := range salaries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := base
		req.GrossAnnualSalary = salary
		result, err := sa.engine.CalculateTax(req)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate salary %s: %w", salary.StringFixed(0), err)
		}

		point := domain.SweepPoint{
			GrossSalary:       salary,
			OldLiability:      result.OldRegime.TaxLiability,
			NewLiability:      result.NewRegime.TaxLiability,
			RecommendedRegime: result.RecommendedRegime,
			TaxSavings:        result.TaxSavings,
		}
		if i > 0 && analysis.Points[i-1].RecommendedRegime != point.RecommendedRegime {
			analysis.Crossovers = append(analysis.Crossovers, salary)
		}
		analysis.Points = append(analysis.Points, point)
	}

	return analysis, nil
}

// sweepValues expands a sweep into from, from+step, ... up to and including to
func sweepValues(sweep domain.SalarySweep) ([]decimal.Decimal, error) {
	if !sweep.Step.IsPositive() {
		return nil, &domain.ValidationError{Field: "step", Value: sweep.Step.String(), Reason: "must be positive"}
	}
	if sweep.From.IsNegative() {
		return nil, &domain.ValidationError{Field: "from", Value: sweep.From.String(), Reason: "cannot be negative"}
	}
	if sweep.To.LessThan(sweep.From) {
		return nil, &domain.ValidationError{Field: "to", Value: sweep.To.String(), Reason: "must not be below from"}
	}

	// compare as a decimal, IntPart wraps on ranges past int64
	count := sweep.To.Sub(sweep.From).Div(sweep.Step).Floor().Add(decimal.NewFromInt(1))
	if count.GreaterThan(decimal.NewFromInt(MaxSweepPoints)) {
		return nil, &domain.ValidationError{
			Field:  "step",
			Value:  sweep.Step.String(),
			Reason: fmt.Sprintf("sweep would evaluate %s salaries, the limit is %d", count.String(), MaxSweepPoints),
		}
	}

	return lo.Times(int(count.IntPart()), func(i int) decimal.Decimal {
		return sweep.From.Add(sweep.Step.Mul(decimal.NewFromInt(int64(i))))
	}), nil
}
