package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOldRegimeCalculator(t *testing.T) {
	calc := NewOldRegimeCalculator(testRules(t))

	tests := []struct {
		name            string
		gross           int64
		age             domain.AgeCategory
		deductions      domain.DeductionInputs
		isSalaried      bool
		professionalTax int64
		taxable         string
		baseTax         string
		cess            string
		liability       string
	}{
		{
			name:       "10 lakh salaried, no deductions",
			gross:      1000000,
			age:        domain.AgeBelow60,
			isSalaried: true,
			taxable:    "950000",
			baseTax:    "102500",
			cess:       "4100",
			liability:  "106600",
		},
		{
			name:       "rebate wipes tax at 5 lakh taxable",
			gross:      550000,
			age:        domain.AgeBelow60,
			isSalaried: true,
			taxable:    "500000",
			baseTax:    "12500",
			cess:       "0",
			liability:  "0",
		},
		{
			name:       "one rupee over the rebate limit",
			gross:      550001,
			age:        domain.AgeBelow60,
			isSalaried: true,
			taxable:    "500001",
			baseTax:    "12500.2",
			cess:       "501",
			liability:  "13001.2",
		},
		{
			name:            "deductions, professional tax and house property loss",
			gross:           1500000,
			age:             domain.AgeBelow60,
			isSalaried:      true,
			professionalTax: 3000,
			deductions: domain.DeductionInputs{
				domain.Section80C:     d(200000),
				domain.Section80CCD1B: d(60000),
				domain.Section80D:     d(30000),
				domain.Section24B:     d(250000),
				domain.Section80E:     d(40000),
			},
			taxable:   "977500",
			baseTax:   "108000",
			cess:      "4320",
			liability: "112320",
		},
		{
			name:       "non-salaried gets no standard deduction",
			gross:      1000000,
			age:        domain.AgeBelow60,
			isSalaried: false,
			taxable:    "1000000",
			baseTax:    "112500",
			cess:       "4500",
			liability:  "117000",
		},
		{
			name:       "senior citizen slabs",
			gross:      1050000,
			age:        domain.AgeSenior60To80,
			isSalaried: true,
			taxable:    "1000000",
			baseTax:    "110000",
			cess:       "4400",
			liability:  "114400",
		},
		{
			name:       "super senior citizen slabs",
			gross:      1050000,
			age:        domain.AgeSuperSenior80,
			isSalaried: true,
			taxable:    "1000000",
			baseTax:    "100000",
			cess:       "4000",
			liability:  "104000",
		},
		{
			name:       "deductions larger than income floor at zero",
			gross:      300000,
			age:        domain.AgeBelow60,
			isSalaried: true,
			deductions: domain.DeductionInputs{
				domain.Section24B: d(200000),
				domain.Section80E: d(500000),
			},
			taxable:   "0",
			baseTax:   "0",
			cess:      "0",
			liability: "0",
		},
		{
			name:       "surcharge with marginal relief just above 50 lakh",
			gross:      5050100,
			age:        domain.AgeBelow60,
			isSalaried: true,
			taxable:    "5000100",
			baseTax:    "1312530",
			cess:       "52504",
			liability:  "1365104",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.Calculate(d(tt.gross), tt.age, tt.deductions, tt.isSalaried, d(tt.professionalTax))
			require.NoError(t, err)

			assert.Equal(t, domain.RegimeOld, b.Regime)
			assert.Equal(t, tt.age, b.AgeCategory)
			assertDecimal(t, dec(tt.taxable), b.TaxableIncome, "taxable income")
			assertDecimal(t, dec(tt.baseTax), b.BaseTax, "base tax")
			assertDecimal(t, dec(tt.cess), b.Cess, "cess")
			assertDecimal(t, dec(tt.liability), b.TaxLiability, "liability")
			assertDecimal(t, b.TaxAfterRebate.Add(b.Surcharge).Add(b.Cess), b.TaxLiability, "liability identity")
			assert.False(t, b.TaxLiability.IsNegative())
		})
	}
}

func TestOldRegimeCalculator_Breakdown(t *testing.T) {
	calc := NewOldRegimeCalculator(testRules(t))

	b, err := calc.Calculate(d(1500000), domain.AgeBelow60, domain.DeductionInputs{
		domain.Section80C: d(200000),
		domain.Section24B: d(250000),
	}, true, d(3000))
	require.NoError(t, err)

	assertDecimal(t, d(50000), b.StandardDeduction, "standard deduction")
	assertDecimal(t, d(2500), b.ProfessionalTax, "professional tax capped")
	assertDecimal(t, d(200000), b.HousePropertyLoss, "house property loss capped")
	assertDecimal(t, d(1247500), b.GrossTotalIncome, "gross total income")
	assertDecimal(t, d(150000), b.ChapterVIADeductions, "chapter VI-A")
	require.Len(t, b.DeductionLines, 1)
	assertDecimal(t, d(1097500), b.TaxableIncome, "taxable")
}

func TestOldRegimeCalculator_SurchargeFields(t *testing.T) {
	calc := NewOldRegimeCalculator(testRules(t))

	b, err := calc.Calculate(d(5050100), domain.AgeBelow60, nil, true, d(0))
	require.NoError(t, err)

	assertDecimal(t, d(70), b.Surcharge, "surcharge")
	assertDecimal(t, d(131183), b.MarginalRelief, "marginal relief")
}

func TestOldRegimeCalculator_UnknownAge(t *testing.T) {
	calc := NewOldRegimeCalculator(testRules(t))

	_, err := calc.Calculate(d(1000000), domain.AgeCategory("teen"), nil, true, d(0))
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "age_category", vErr.Field)
}

func TestNewRegimeCalculator(t *testing.T) {
	calc := NewNewRegimeCalculator(testRules(t))

	tests := []struct {
		name       string
		gross      int64
		isSalaried bool
		taxable    string
		baseTax    string
		rebate     string
		liability  string
	}{
		{"zero income", 0, true, "0", "0", "0", "0"},
		{"full rebate at 10 lakh", 1000000, true, "925000", "32500", "32500", "0"},
		{"full rebate at exactly 12 lakh taxable", 1275000, true, "1200000", "60000", "60000", "0"},
		{"rebate cliff one rupee over", 1275001, true, "1200001", "60000.15", "0", "62401.15"},
		{"15 lakh salaried", 1500000, true, "1425000", "93750", "0", "97500"},
		{"20 lakh salaried", 2000000, true, "1925000", "185000", "0", "192400"},
		{"non-salaried below rebate limit", 1000000, false, "1000000", "40000", "40000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := calc.Calculate(d(tt.gross), tt.isSalaried)

			assert.Equal(t, domain.RegimeNew, b.Regime)
			assert.Empty(t, b.DeductionLines)
			assertDecimal(t, dec(tt.taxable), b.TaxableIncome, "taxable income")
			assertDecimal(t, dec(tt.baseTax), b.BaseTax, "base tax")
			assertDecimal(t, dec(tt.rebate), b.Rebate, "rebate")
			assertDecimal(t, dec(tt.liability), b.TaxLiability, "liability")
		})
	}
}

func TestNewRegimeCalculator_EffectiveRate(t *testing.T) {
	calc := NewNewRegimeCalculator(testRules(t))

	b := calc.Calculate(d(2000000), true)
	assertDecimal(t, dec("0.0962"), b.EffectiveRate, "effective rate")
	assertDecimal(t, dec("0.20"), b.MarginalRate, "marginal rate")

	zero := calc.Calculate(d(0), true)
	assertDecimal(t, d(0), zero.EffectiveRate, "zero gross")
}
