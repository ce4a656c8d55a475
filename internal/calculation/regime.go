package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// OldRegimeCalculator runs the old-regime pipeline: income adjustments,
// Chapter VI-A deductions, age-based slabs, rebate, surcharge and cess.
type OldRegimeCalculator struct {
	Rules    domain.OldRegimeRules
	CessRate decimal.Decimal
	Logger   Logger
}

// NewOldRegimeCalculator creates an old-regime calculator from a rule set
func NewOldRegimeCalculator(rs *domain.RuleSet) *OldRegimeCalculator {
	return &OldRegimeCalculator{Rules: rs.OldRegime, CessRate: rs.CessRate, Logger: NopLogger{}}
}

// Calculate computes the old-regime breakdown
func (c *OldRegimeCalculator) Calculate(grossSalary decimal.Decimal, age domain.AgeCategory, deductions domain.DeductionInputs, isSalaried bool, professionalTax decimal.Decimal) (domain.TaxBreakdown, error) {
	slabs, ok := c.Rules.SlabsFor(age)
	if !ok {
		return domain.TaxBreakdown{}, &domain.ValidationError{Field: "age_category", Value: string(age), Reason: "no slab table for this age category"}
	}
	log := orNop(c.Logger)

	// 1. Income adjustments (Section 16 and house property)
	standardDeduction := decimal.Zero
	if isSalaried {
		standardDeduction = c.Rules.StandardDeduction
	}
	professionalTaxAllowed := decimal.Min(clampZero(professionalTax), c.Rules.ProfessionalTaxCap)
	housePropertyLoss := decimal.Min(deductions.Get(domain.Section24B), c.Rules.HousePropertyLossCap)
	grossTotalIncome := clampZero(grossSalary.Sub(standardDeduction).Sub(professionalTaxAllowed).Sub(housePropertyLoss))

	// 2. Chapter VI-A
	lines := DeductionLines(deductions, c.Rules.DeductionGroups)
	chapterVIA := AggregateDeductions(deductions, c.Rules.DeductionGroups)
	taxableIncome := clampZero(grossTotalIncome.Sub(chapterVIA))

	// 3-7. Slabs, rebate, surcharge, cess
	b := domain.TaxBreakdown{
		Regime:               domain.RegimeOld,
		AgeCategory:          age,
		GrossIncome:          grossSalary,
		StandardDeduction:    standardDeduction,
		ProfessionalTax:      professionalTaxAllowed,
		HousePropertyLoss:    housePropertyLoss,
		GrossTotalIncome:     grossTotalIncome,
		ChapterVIADeductions: chapterVIA,
		DeductionLines:       lines,
		TaxableIncome:        taxableIncome,
	}
	finishBreakdown(&b, slabs, c.Rules.Rebate, c.Rules.SurchargeTiers, c.CessRate, log)
	return b, nil
}

// NewRegimeCalculator runs the new-regime pipeline. No itemized deductions
// are allowed and one slab table applies to every age.
type NewRegimeCalculator struct {
	Rules    domain.NewRegimeRules
	CessRate decimal.Decimal
	Logger   Logger
}

// NewNewRegimeCalculator creates a new-regime calculator from a rule set
func NewNewRegimeCalculator(rs *domain.RuleSet) *NewRegimeCalculator {
	return &NewRegimeCalculator{Rules: rs.NewRegime, CessRate: rs.CessRate, Logger: NopLogger{}}
}

// Calculate computes the new-regime breakdown
func (c *NewRegimeCalculator) Calculate(grossSalary decimal.Decimal, isSalaried bool) domain.TaxBreakdown {
	standardDeduction := decimal.Zero
	if isSalaried {
		standardDeduction = c.Rules.StandardDeduction
	}

	b := domain.TaxBreakdown{
		Regime:            domain.RegimeNew,
		GrossIncome:       grossSalary,
		StandardDeduction: standardDeduction,
		GrossTotalIncome:  clampZero(grossSalary.Sub(standardDeduction)),
	}
	b.TaxableIncome = b.GrossTotalIncome
	finishBreakdown(&b, c.Rules.Slabs, c.Rules.Rebate, c.Rules.SurchargeTiers, c.CessRate, orNop(c.Logger))
	return b
}

// finishBreakdown fills in the steps shared by both regimes, starting from
// b.TaxableIncome.
func finishBreakdown(b *domain.TaxBreakdown, slabs []domain.Slab, rebate domain.RebateRule, tiers []domain.SurchargeTier, cessRate decimal.Decimal, log Logger) {
	b.BaseTax = EvaluateSlabTax(b.TaxableIncome, slabs)
	b.Rebate = computeRebate(b.TaxableIncome, b.BaseTax, rebate)
	b.TaxAfterRebate = clampZero(b.BaseTax.Sub(b.Rebate))

	surcharge := CalculateSurchargeWithRelief(b.TaxableIncome, b.TaxAfterRebate, tiers, slabs)
	b.Surcharge = surcharge.Surcharge
	b.MarginalRelief = surcharge.Relief
	if surcharge.Rate.IsPositive() {
		log.Debugf("%s regime: surcharge %s%% above %s, raw %s, relief %s",
			b.Regime, surcharge.Rate.Shift(2).String(), surcharge.Threshold.StringFixed(0),
			surcharge.Raw.StringFixed(2), surcharge.Relief.StringFixed(2))
	}

	taxPlusSurcharge := b.TaxAfterRebate.Add(b.Surcharge)
	b.Cess = computeCess(taxPlusSurcharge, cessRate)
	b.TaxLiability = taxPlusSurcharge.Add(b.Cess)
	b.EffectiveRate = effectiveRate(b.TaxLiability, b.GrossIncome)
	b.MarginalRate = MarginalRate(b.TaxableIncome, slabs)

	log.Debugf("%s regime: taxable %s, base %s, rebate %s, surcharge %s, cess %s, liability %s",
		b.Regime, b.TaxableIncome.StringFixed(2), b.BaseTax.StringFixed(2), b.Rebate.StringFixed(2),
		b.Surcharge.StringFixed(2), b.Cess.StringFixed(0), b.TaxLiability.StringFixed(2))
}
