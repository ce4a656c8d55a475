package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSurchargeWithRelief_NewRegime(t *testing.T) {
	rs := testRules(t)
	slabs := rs.NewRegime.Slabs
	tiers := rs.NewRegime.SurchargeTiers

	tests := []struct {
		name           string
		income         decimal.Decimal
		expectedRate   decimal.Decimal
		expectedAmount decimal.Decimal
		expectedRelief decimal.Decimal
	}{
		{
			name:           "below first threshold",
			income:         d(4000000),
			expectedRate:   decimal.Zero,
			expectedAmount: decimal.Zero,
			expectedRelief: decimal.Zero,
		},
		{
			name:           "exactly at 50 lakh is not above it",
			income:         d(5000000),
			expectedRate:   decimal.Zero,
			expectedAmount: decimal.Zero,
			expectedRelief: decimal.Zero,
		},
		{
			// tax 10,80,030; raw 1,08,003; cap 10,80,000 + 100
			name:           "just above 50 lakh gets marginal relief",
			income:         d(5000100),
			expectedRate:   dec("0.10"),
			expectedAmount: d(70),
			expectedRelief: d(107933),
		},
		{
			name:           "60 lakh pays full 10%",
			income:         d(6000000),
			expectedRate:   dec("0.10"),
			expectedAmount: d(138000),
			expectedRelief: decimal.Zero,
		},
		{
			name:           "exactly at 1 crore stays in 10% band",
			income:         d(10000000),
			expectedRate:   dec("0.10"),
			expectedAmount: d(258000),
			expectedRelief: decimal.Zero,
		},
		{
			// tax 25,80,030; raw 3,87,004.50; cap 25,80,000 * 1.10 + 100
			name:           "just above 1 crore relieved against 10% total",
			income:         d(10000100),
			expectedRate:   dec("0.15"),
			expectedAmount: d(258070),
			expectedRelief: dec("128934.5"),
		},
		{
			name:           "above 2 crore uses capped 25% rate",
			income:         d(30000000),
			expectedRate:   dec("0.25"),
			expectedAmount: dec("0.25").Mul(EvaluateSlabTax(d(30000000), slabs)),
			expectedRelief: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := EvaluateSlabTax(tt.income, slabs)
			result := CalculateSurchargeWithRelief(tt.income, tax, tiers, slabs)

			assertDecimal(t, tt.expectedRate, result.Rate, "rate")
			assertDecimal(t, tt.expectedAmount, result.Surcharge, "surcharge")
			assertDecimal(t, tt.expectedRelief, result.Relief, "relief")
			assert.Equal(t, !tt.expectedRelief.IsZero(), result.ReliefApplied())
			assertDecimal(t, result.Surcharge, ComputeSurcharge(tt.income, tax, tiers, slabs), "ComputeSurcharge")
		})
	}
}

func TestCalculateSurchargeWithRelief_OldRegimeTopTier(t *testing.T) {
	rs := testRules(t)
	slabs := rs.OldRegime.Slabs[domain.AgeBelow60]
	tiers := rs.OldRegime.SurchargeTiers

	income := d(60000000)
	tax := EvaluateSlabTax(income, slabs)
	result := CalculateSurchargeWithRelief(income, tax, tiers, slabs)

	assertDecimal(t, d(50000000), result.Threshold, "threshold")
	assertDecimal(t, dec("0.37"), result.Rate, "rate")
	assertDecimal(t, tax.Mul(dec("0.37")), result.Surcharge, "surcharge")
}

func TestCalculateSurchargeWithRelief_OldRegimeJustAboveThreshold(t *testing.T) {
	rs := testRules(t)
	slabs := rs.OldRegime.Slabs[domain.AgeBelow60]
	tiers := rs.OldRegime.SurchargeTiers

	income := d(5000100)
	tax := EvaluateSlabTax(income, slabs)
	assertDecimal(t, d(1312530), tax, "base tax")

	result := CalculateSurchargeWithRelief(income, tax, tiers, slabs)
	assertDecimal(t, d(70), result.Surcharge, "surcharge")
	assertDecimal(t, d(131183), result.Relief, "relief")
}

// Crossing a threshold must never cost more in tax plus surcharge than the
// extra income earned.
func TestMarginalReliefInvariant(t *testing.T) {
	rs := testRules(t)

	cases := map[string]struct {
		slabs []domain.Slab
		tiers []domain.SurchargeTier
	}{
		"new":          {rs.NewRegime.Slabs, rs.NewRegime.SurchargeTiers},
		"old below_60": {rs.OldRegime.Slabs[domain.AgeBelow60], rs.OldRegime.SurchargeTiers},
		"old above_80": {rs.OldRegime.Slabs[domain.AgeSuperSenior80], rs.OldRegime.SurchargeTiers},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			for i, tier := range c.tiers {
				if tier.Unbounded() {
					continue
				}
				threshold := *tier.Threshold
				taxAt := EvaluateSlabTax(threshold, c.slabs)
				totalAt := taxAt.Add(ComputeSurcharge(threshold, taxAt, c.tiers, c.slabs))
				assertDecimal(t, totalAt, taxAt.Add(taxAt.Mul(c.tiers[i].Rate)), "total at threshold")

				for _, extra := range []int64{1, 10, 100, 1000, 10000, 100000, 250000} {
					income := threshold.Add(d(extra))
					tax := EvaluateSlabTax(income, c.slabs)
					total := tax.Add(ComputeSurcharge(income, tax, c.tiers, c.slabs))
					assert.True(t, total.Sub(totalAt).LessThanOrEqual(d(extra)),
						"threshold %s + %d: total rose by %s", threshold, extra, total.Sub(totalAt))
				}
			}
		})
	}
}

func TestCalculateSurchargeWithRelief_NeverNegative(t *testing.T) {
	rs := testRules(t)
	slabs := rs.NewRegime.Slabs
	tiers := rs.NewRegime.SurchargeTiers

	// A post-rebate tax far above the relief ceiling clamps the surcharge at zero.
	result := CalculateSurchargeWithRelief(d(5000001), d(9000000), tiers, slabs)
	assert.False(t, result.Surcharge.IsNegative())
	assertDecimal(t, decimal.Zero, result.Surcharge, "surcharge")
	assertDecimal(t, result.Raw, result.Relief, "relief")
}

func TestSelectSurchargeTier(t *testing.T) {
	rs := testRules(t)
	tiers := rs.OldRegime.SurchargeTiers

	assert.Equal(t, -1, selectSurchargeTier(decimal.Zero, tiers))
	assert.Equal(t, -1, selectSurchargeTier(d(5000000), tiers))
	assert.Equal(t, 0, selectSurchargeTier(d(5000001), tiers))
	assert.Equal(t, 1, selectSurchargeTier(d(10000001), tiers))
	assert.Equal(t, 2, selectSurchargeTier(d(50000000), tiers))
	assert.Equal(t, 3, selectSurchargeTier(d(50000001), tiers))
}
