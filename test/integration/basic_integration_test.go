package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicIntegration tests the full input-to-recommendation flow
func TestBasicIntegration(t *testing.T) {
	parser := config.NewInputParser()
	engine := newEngine(t)

	t.Run("salaried_15l", func(t *testing.T) {
		parsed, err := parser.LoadFromFile("../testdata/salaried_15l.yaml")
		require.NoError(t, err)
		assert.Empty(t, parsed.Warnings)

		result, err := engine.CalculateTax(parsed.Request)
		require.NoError(t, err)

		old := result.OldRegime
		assert.True(t, old.ProfessionalTax.Equal(decimal.NewFromInt(2500)), "Professional tax is capped")
		assert.True(t, old.HousePropertyLoss.Equal(decimal.NewFromInt(200000)), "House property loss is capped")
		assert.True(t, old.ChapterVIADeductions.Equal(decimal.NewFromInt(270000)))
		assert.True(t, old.TaxableIncome.Equal(decimal.NewFromInt(977500)))
		assert.True(t, old.TaxLiability.Equal(decimal.NewFromInt(112320)))
		assert.True(t, result.NewRegime.TaxLiability.Equal(decimal.NewFromInt(97500)))
		assert.True(t, result.TaxSavings.Equal(decimal.NewFromInt(14820)))
	})

	t.Run("senior_high_income", func(t *testing.T) {
		parsed, err := parser.LoadFromFile("../testdata/senior_high_income.yaml")
		require.NoError(t, err)
		require.Len(t, parsed.Warnings, 1)
		assert.Contains(t, parsed.Warnings[0], "section_80zz")

		assert.Equal(t, domain.AgeSenior60To80, parsed.Request.AgeCategory)
		assert.True(t, parsed.Request.IsSalaried, "is_salaried defaults to true")

		result, err := engine.CalculateTax(parsed.Request)
		require.NoError(t, err)

		for _, b := range []domain.TaxBreakdown{result.OldRegime, result.NewRegime} {
			assert.True(t, b.Surcharge.IsPositive(), "%s regime should carry surcharge above 50 lakh", b.Regime)
			total := b.TaxAfterRebate.Add(b.Surcharge).Add(b.Cess)
			assert.True(t, total.Equal(b.TaxLiability), "%s regime liability should add up", b.Regime)
		}
	})

	t.Run("break_even_from_file", func(t *testing.T) {
		parsed, err := parser.LoadFromFile("../testdata/salaried_15l.yaml")
		require.NoError(t, err)

		result, err := breakeven.NewDefaultSolver(engine).Solve(context.Background(), breakeven.Request{
			Base:    parsed.Request,
			Section: domain.Section80G,
		})
		require.NoError(t, err)
		assert.Equal(t, breakeven.OutcomeFound, result.Outcome)
		assert.True(t, result.BreakEvenAmount.Equal(decimal.NewFromInt(71250)))
	})
}

// TestErrorHandling tests failures across package boundaries
func TestErrorHandling(t *testing.T) {
	parser := config.NewInputParser()

	t.Run("invalid_input_reports_every_field", func(t *testing.T) {
		_, err := parser.LoadFromFile("../testdata/invalid_input.yaml")
		require.Error(t, err)

		for _, field := range []string{"gross_annual_salary", "age_category", "professional_tax_paid"} {
			assert.Contains(t, err.Error(), field)
		}
		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := parser.LoadFromFile("../testdata/does_not_exist.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("engine_rejects_invalid_request", func(t *testing.T) {
		_, err := newEngine(t).CalculateTax(domain.TaxRequest{
			GrossAnnualSalary: decimal.NewFromInt(-1),
			AgeCategory:       domain.AgeBelow60,
		})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "gross_annual_salary", verr.Field)
	})
}

// TestDataConsistency checks that the sweep and direct calculation agree
func TestDataConsistency(t *testing.T) {
	parsed, err := config.NewInputParser().LoadFromFile("../testdata/salaried_15l.yaml")
	require.NoError(t, err)

	engine := newEngine(t)
	analysis, err := calculation.NewSensitivityAnalyzer(engine).SweepSalary(context.Background(), parsed.Request, domain.SalarySweep{
		From: decimal.NewFromInt(500000),
		To:   decimal.NewFromInt(6000000),
		Step: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)
	require.Len(t, analysis.Points, 12)

	for _, p := range analysis.Points {
		req := parsed.Request
		req.GrossAnnualSalary = p.GrossSalary
		direct, err := engine.CalculateTax(req)
		require.NoError(t, err)

		assert.True(t, direct.OldRegime.TaxLiability.Equal(p.OldLiability), "old liability at %s", p.GrossSalary)
		assert.True(t, direct.NewRegime.TaxLiability.Equal(p.NewLiability), "new liability at %s", p.GrossSalary)
		assert.Equal(t, direct.RecommendedRegime, p.RecommendedRegime)
	}
}
