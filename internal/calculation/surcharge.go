package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// SurchargeResult describes how a surcharge was reached
type SurchargeResult struct {
	// Threshold is the highest tier threshold strictly exceeded, zero if none
	Threshold decimal.Decimal
	// Rate is the surcharge rate of the band above Threshold
	Rate decimal.Decimal
	// Raw is the surcharge before marginal relief
	Raw decimal.Decimal
	// Relief is the part of Raw forgiven by marginal relief
	Relief decimal.Decimal
	// Surcharge is the amount payable
	Surcharge decimal.Decimal
}

// ReliefApplied reports whether marginal relief reduced the surcharge
func (r SurchargeResult) ReliefApplied() bool {
	return r.Relief.GreaterThan(decimal.Zero)
}

// ComputeSurcharge returns the surcharge payable on postRebateTax after marginal relief
func ComputeSurcharge(taxableIncome, postRebateTax decimal.Decimal, tiers []domain.SurchargeTier, slabs []domain.Slab) decimal.Decimal {
	return CalculateSurchargeWithRelief(taxableIncome, postRebateTax, tiers, slabs).Surcharge
}

// CalculateSurchargeWithRelief selects the surcharge tier for taxableIncome,
// applies its rate to postRebateTax and caps the result so that tax plus
// surcharge never exceeds the total payable at the threshold plus the income
// earned above it.
func CalculateSurchargeWithRelief(taxableIncome, postRebateTax decimal.Decimal, tiers []domain.SurchargeTier, slabs []domain.Slab) SurchargeResult {
	idx := selectSurchargeTier(taxableIncome, tiers)
	if idx < 0 {
		return SurchargeResult{}
	}

	threshold := *tiers[idx].Threshold
	rate := tiers[idx].Rate
	if idx+1 < len(tiers) {
		rate = tiers[idx+1].Rate
	}
	result := SurchargeResult{Threshold: threshold, Rate: rate}
	if !rate.IsPositive() {
		return result
	}

	raw := postRebateTax.Mul(rate)
	result.Raw = raw
	result.Surcharge = raw

	// Marginal relief against the liability at exactly the threshold, where
	// the threshold tier's own rate applies.
	taxAtThreshold := EvaluateSlabTax(threshold, slabs)
	totalAtThreshold := taxAtThreshold.Add(taxAtThreshold.Mul(tiers[idx].Rate))
	maxAllowed := totalAtThreshold.Add(taxableIncome.Sub(threshold))

	if postRebateTax.Add(raw).GreaterThan(maxAllowed) {
		result.Surcharge = clampZero(maxAllowed.Sub(postRebateTax))
		result.Relief = raw.Sub(result.Surcharge)
	}
	return result
}

// selectSurchargeTier returns the index of the highest finite threshold
// strictly exceeded by taxableIncome, or -1.
func selectSurchargeTier(taxableIncome decimal.Decimal, tiers []domain.SurchargeTier) int {
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].Unbounded() {
			continue
		}
		if taxableIncome.GreaterThan(*tiers[i].Threshold) {
			return i
		}
	}
	return -1
}
