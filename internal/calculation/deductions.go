package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AggregateDeductions sums the Chapter VI-A deductions allowed under the
// group caps. Sections that belong to no group contribute nothing.
func AggregateDeductions(inputs domain.DeductionInputs, groups []domain.DeductionGroup) decimal.Decimal {
	return lo.Reduce(DeductionLines(inputs, groups), func(total decimal.Decimal, line domain.DeductionLine, _ int) decimal.Decimal {
		return total.Add(line.Allowed)
	}, decimal.Zero)
}

// DeductionLines reports the claimed and allowed amount of every group with a claim
func DeductionLines(inputs domain.DeductionInputs, groups []domain.DeductionGroup) []domain.DeductionLine {
	return lo.FilterMap(groups, func(group domain.DeductionGroup, _ int) (domain.DeductionLine, bool) {
		claimed := lo.Reduce(group.Sections, func(sum decimal.Decimal, s domain.Section, _ int) decimal.Decimal {
			return sum.Add(inputs.Get(s))
		}, decimal.Zero)
		if claimed.IsZero() {
			return domain.DeductionLine{}, false
		}

		allowed := claimed
		if group.Capped() {
			allowed = decimal.Min(claimed, *group.Cap)
		}
		return domain.DeductionLine{Group: group.Name, Claimed: claimed, Allowed: allowed}, true
	})
}

// RemainingCapacity returns how much more can be claimed under the group
// containing section before its cap binds. ok is false when the section is
// in no group; an uncapped group returns ok with capped=false.
func RemainingCapacity(inputs domain.DeductionInputs, groups []domain.DeductionGroup, section domain.Section) (remaining decimal.Decimal, capped bool, ok bool) {
	group, found := lo.Find(groups, func(g domain.DeductionGroup) bool {
		return lo.Contains(g.Sections, section)
	})
	if !found {
		return decimal.Zero, false, false
	}
	if !group.Capped() {
		return decimal.Zero, false, true
	}
	claimed := lo.Reduce(group.Sections, func(sum decimal.Decimal, s domain.Section, _ int) decimal.Decimal {
		return sum.Add(inputs.Get(s))
	}, decimal.Zero)
	return clampZero(group.Cap.Sub(claimed)), true, true
}
