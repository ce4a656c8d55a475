package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepBase() domain.TaxRequest {
	return domain.TaxRequest{
		AgeCategory: domain.AgeBelow60,
		IsSalaried:  true,
		Deductions: domain.DeductionInputs{
			domain.Section80C:     d(150000),
			domain.Section80D:     d(100000),
			domain.Section80CCD1B: d(50000),
			domain.Section24B:     d(200000),
			domain.Section80E:     d(300000),
		},
	}
}

func TestSensitivityAnalyzer_SweepSalary(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewTaxEngine(testRules(t)))

	analysis, err := analyzer.SweepSalary(context.Background(), sweepBase(), domain.SalarySweep{
		From: d(0),
		To:   d(2000000),
		Step: d(500000),
	})
	require.NoError(t, err)
	require.Len(t, analysis.Points, 5)
	assert.Equal(t, "2025-26", analysis.FiscalYear)

	expected := []struct {
		salary      int64
		old         int64
		new         int64
		recommended domain.Regime
	}{
		{0, 0, 0, domain.RegimeNew},
		{500000, 0, 0, domain.RegimeNew},
		{1000000, 0, 0, domain.RegimeNew},
		{1500000, 44200, 97500, domain.RegimeOld},
		{2000000, 163800, 192400, domain.RegimeOld},
	}
	for i, e := range expected {
		p := analysis.Points[i]
		assertDecimal(t, d(e.salary), p.GrossSalary, "salary")
		assertDecimal(t, d(e.old), p.OldLiability, "old liability")
		assertDecimal(t, d(e.new), p.NewLiability, "new liability")
		assert.Equal(t, e.recommended, p.RecommendedRegime, "recommendation at %d", e.salary)
	}

	require.Len(t, analysis.Crossovers, 1)
	assertDecimal(t, d(1500000), analysis.Crossovers[0], "crossover")
}

func TestSensitivityAnalyzer_IncludesEndpointOnlyWhenOnStep(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewTaxEngine(testRules(t)))

	analysis, err := analyzer.SweepSalary(context.Background(), sweepBase(), domain.SalarySweep{
		From: d(100000),
		To:   d(1000000),
		Step: d(400000),
	})
	require.NoError(t, err)
	require.Len(t, analysis.Points, 3)
	assertDecimal(t, d(900000), analysis.Points[2].GrossSalary, "last point")

	single, err := analyzer.SweepSalary(context.Background(), sweepBase(), domain.SalarySweep{
		From: d(750000),
		To:   d(750000),
		Step: d(1),
	})
	require.NoError(t, err)
	assert.Len(t, single.Points, 1)
	assert.Empty(t, single.Crossovers)
}

func TestSensitivityAnalyzer_InvalidSweep(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewTaxEngine(testRules(t)))

	tests := []struct {
		name  string
		sweep domain.SalarySweep
		field string
	}{
		{"zero step", domain.SalarySweep{From: d(0), To: d(100), Step: decimal.Zero}, "step"},
		{"negative step", domain.SalarySweep{From: d(0), To: d(100), Step: d(-10)}, "step"},
		{"negative from", domain.SalarySweep{From: d(-100), To: d(100), Step: d(10)}, "from"},
		{"to below from", domain.SalarySweep{From: d(500), To: d(100), Step: d(10)}, "to"},
		{"too many points", domain.SalarySweep{From: d(0), To: d(10000000), Step: d(1)}, "step"},
		{"range past int64", domain.SalarySweep{From: d(0), To: decimal.RequireFromString("18446744073709551617"), Step: d(1)}, "step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.SweepSalary(context.Background(), sweepBase(), tt.sweep)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestSensitivityAnalyzer_Cancelled(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewTaxEngine(testRules(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.SweepSalary(ctx, sweepBase(), domain.SalarySweep{From: d(0), To: d(1000000), Step: d(100000)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSensitivityAnalyzer_PropagatesValidation(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewTaxEngine(testRules(t)))
	base := sweepBase()
	base.AgeCategory = domain.AgeCategory("unknown")

	_, err := analyzer.SweepSalary(context.Background(), base, domain.SalarySweep{From: d(0), To: d(100000), Step: d(50000)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age_category")
}
