package domain

import (
	"github.com/shopspring/decimal"
)

// RuleSet contains all regulatory data for a single fiscal year.
// It is loaded from a rules YAML document and shared read-only by every calculation.
type RuleSet struct {
	Metadata  RuleSetMetadata `yaml:"metadata" json:"metadata"`
	CessRate  decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	OldRegime OldRegimeRules  `yaml:"old_regime" json:"old_regime"`
	NewRegime NewRegimeRules  `yaml:"new_regime" json:"new_regime"`
}

// RuleSetMetadata contains information about the rule data
type RuleSetMetadata struct {
	FiscalYear  string `yaml:"fiscal_year" json:"fiscal_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// OldRegimeRules contains the rules of the old (deduction-based) regime
type OldRegimeRules struct {
	StandardDeduction    decimal.Decimal        `yaml:"standard_deduction" json:"standard_deduction"`
	ProfessionalTaxCap   decimal.Decimal        `yaml:"professional_tax_cap" json:"professional_tax_cap"`
	HousePropertyLossCap decimal.Decimal        `yaml:"house_property_loss_cap" json:"house_property_loss_cap"`
	Rebate               RebateRule             `yaml:"rebate" json:"rebate"`
	Slabs                map[AgeCategory][]Slab `yaml:"slabs" json:"slabs"`
	SurchargeTiers       []SurchargeTier        `yaml:"surcharge_tiers" json:"surcharge_tiers"`
	DeductionGroups      []DeductionGroup       `yaml:"deduction_groups" json:"deduction_groups"`
}

// SlabsFor returns the slab table for an age category
func (r OldRegimeRules) SlabsFor(age AgeCategory) ([]Slab, bool) {
	slabs, ok := r.Slabs[age]
	return slabs, ok && len(slabs) > 0
}

// NewRegimeRules contains the rules of the new (concessional) regime.
// One slab table applies to every age category.
type NewRegimeRules struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Rebate            RebateRule      `yaml:"rebate" json:"rebate"`
	Slabs             []Slab          `yaml:"slabs" json:"slabs"`
	SurchargeTiers    []SurchargeTier `yaml:"surcharge_tiers" json:"surcharge_tiers"`
}

// RebateRule describes the Section 87A rebate.
// MaxAmount nil means the rebate forgives the entire base tax.
type RebateRule struct {
	IncomeLimit decimal.Decimal  `yaml:"income_limit" json:"income_limit"`
	MaxAmount   *decimal.Decimal `yaml:"max_amount" json:"max_amount"`
}

// IsFull reports whether the rebate is uncapped
func (r RebateRule) IsFull() bool {
	return r.MaxAmount == nil
}

// Slab is one band of a progressive slab table.
// UpperBound nil marks the final, unbounded slab.
type Slab struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the slab extends to infinity
func (s Slab) Unbounded() bool {
	return s.UpperBound == nil
}

// SurchargeTier pairs an income threshold with the surcharge rate of the band
// that ends at that threshold. Threshold nil marks the final, unbounded tier.
type SurchargeTier struct {
	Threshold *decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the tier has no upper threshold
func (t SurchargeTier) Unbounded() bool {
	return t.Threshold == nil
}

// DeductionGroup caps the combined claim of one or more sections.
// Cap nil means the group is passed through uncapped.
type DeductionGroup struct {
	Name     string           `yaml:"name" json:"name"`
	Sections []Section        `yaml:"sections" json:"sections"`
	Cap      *decimal.Decimal `yaml:"cap" json:"cap"`
}

// Capped reports whether the group has a limit
func (g DeductionGroup) Capped() bool {
	return g.Cap != nil
}

// Amount returns a pointer to a decimal built from an integer, for rule tables
func Amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
