package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slab tables, surcharge tiers, caps and the cess rate come from a
//    domain.RuleSet; nothing fiscal-year specific is hardcoded here.
//
// 2. A slab boundary belongs to the lower slab: income exactly at an upper
//    bound is taxed entirely at the lower rates.
//
// 3. Surcharge rates apply strictly above a threshold, never at it.
//
// 4. Cess is rounded up to the next whole rupee.

// EvaluateSlabTax computes the base tax on taxableIncome by walking the slab
// table from the bottom, taxing each band's share at that band's rate.
// Negative income is treated as zero.
func EvaluateSlabTax(taxableIncome decimal.Decimal, slabs []domain.Slab) decimal.Decimal {
	tax := decimal.Zero
	previousBound := decimal.Zero

	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(previousBound) {
			break
		}

		upper := taxableIncome
		if !slab.Unbounded() {
			upper = decimal.Min(taxableIncome, *slab.UpperBound)
		}
		incomeInSlab := upper.Sub(previousBound)
		if incomeInSlab.GreaterThan(decimal.Zero) {
			tax = tax.Add(incomeInSlab.Mul(slab.Rate))
		}

		if slab.Unbounded() {
			break
		}
		previousBound = *slab.UpperBound
	}

	return tax
}

// MarginalRate returns the slab rate applied to the last rupee of taxableIncome
func MarginalRate(taxableIncome decimal.Decimal, slabs []domain.Slab) decimal.Decimal {
	rate := decimal.Zero
	previousBound := decimal.Zero
	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(previousBound) {
			break
		}
		rate = slab.Rate
		if slab.Unbounded() {
			break
		}
		previousBound = *slab.UpperBound
	}
	return rate
}

// clampZero floors an amount at zero
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// computeRebate applies a Section 87A style rebate: when taxable income is at
// or below the limit, forgive the base tax up to MaxAmount (or all of it).
func computeRebate(taxableIncome, baseTax decimal.Decimal, rule domain.RebateRule) decimal.Decimal {
	if taxableIncome.GreaterThan(rule.IncomeLimit) {
		return decimal.Zero
	}
	if rule.IsFull() {
		return baseTax
	}
	return decimal.Min(baseTax, *rule.MaxAmount)
}

// computeCess rounds the cess up to the next whole rupee
func computeCess(taxPlusSurcharge, rate decimal.Decimal) decimal.Decimal {
	return taxPlusSurcharge.Mul(rate).Ceil()
}

// effectiveRate is liability as a fraction of gross income
func effectiveRate(liability, grossIncome decimal.Decimal) decimal.Decimal {
	if grossIncome.IsZero() {
		return decimal.Zero
	}
	return liability.DivRound(grossIncome, 6)
}
