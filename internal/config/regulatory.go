package config

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultFiscalYear is the fiscal year used when none is requested
const DefaultFiscalYear = "2025-26"

//go:embed rules/*.yaml
var embeddedRules embed.FS

// DefaultRuleSet returns a fresh copy of the built-in rule set for DefaultFiscalYear
func DefaultRuleSet() (*domain.RuleSet, error) {
	return RuleSetForYear(DefaultFiscalYear)
}

// MustDefaultRuleSet is DefaultRuleSet for callers that treat a broken
// embedded rule file as a programming error.
func MustDefaultRuleSet() *domain.RuleSet {
	rs, err := DefaultRuleSet()
	if err != nil {
		panic(err)
	}
	return rs
}

// RuleSetForYear returns a fresh copy of the built-in rule set for a fiscal year
// such as "2025-26". Each call parses the embedded document again so callers
// never share mutable tables.
func RuleSetForYear(fiscalYear string) (*domain.RuleSet, error) {
	name := "rules/fy" + strings.ReplaceAll(fiscalYear, "-", "_") + ".yaml"
	data, err := embeddedRules.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("no built-in rules for fiscal year %s (available: %s)",
			fiscalYear, strings.Join(AvailableFiscalYears(), ", "))
	}
	return ParseRuleSet(data)
}

// AvailableFiscalYears lists the fiscal years with built-in rules
func AvailableFiscalYears() []string {
	entries, err := embeddedRules.ReadDir("rules")
	if err != nil {
		return nil
	}
	years := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" || !strings.HasPrefix(name, "fy") {
			return "", false
		}
		return strings.ReplaceAll(strings.TrimSuffix(strings.TrimPrefix(name, "fy"), ".yaml"), "_", "-"), true
	})
	sort.Strings(years)
	return years
}

// LoadRuleSetFromFile loads and validates a rule set from a YAML file
func LoadRuleSetFromFile(filename string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet decodes and validates a rule set document
func ParseRuleSet(data []byte) (*domain.RuleSet, error) {
	var rs domain.RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := normalizeSections(&rs); err != nil {
		return nil, fmt.Errorf("rule set validation failed: %w", err)
	}
	if err := ValidateRuleSet(&rs); err != nil {
		return nil, fmt.Errorf("rule set validation failed: %w", err)
	}
	return &rs, nil
}

// normalizeSections rewrites section aliases in deduction groups to canonical ids
func normalizeSections(rs *domain.RuleSet) error {
	for gi, group := range rs.OldRegime.DeductionGroups {
		for si, s := range group.Sections {
			canonical, ok := domain.ParseSection(string(s))
			if !ok {
				return fmt.Errorf("deduction group %q: unknown section %q", group.Name, s)
			}
			rs.OldRegime.DeductionGroups[gi].Sections[si] = canonical
		}
	}
	return nil
}

// ValidateRuleSet checks the structural invariants of a rule set
func ValidateRuleSet(rs *domain.RuleSet) error {
	if rs.Metadata.FiscalYear == "" {
		return fmt.Errorf("metadata.fiscal_year is required")
	}
	if err := validateRate("cess_rate", rs.CessRate); err != nil {
		return err
	}
	if err := validateOldRegime(&rs.OldRegime); err != nil {
		return fmt.Errorf("old_regime: %w", err)
	}
	if err := validateNewRegime(&rs.NewRegime); err != nil {
		return fmt.Errorf("new_regime: %w", err)
	}
	return nil
}

func validateOldRegime(r *domain.OldRegimeRules) error {
	for field, v := range map[string]decimal.Decimal{
		"standard_deduction":      r.StandardDeduction,
		"professional_tax_cap":    r.ProfessionalTaxCap,
		"house_property_loss_cap": r.HousePropertyLossCap,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", field)
		}
	}
	if err := validateRebate(r.Rebate); err != nil {
		return err
	}
	for _, age := range domain.AgeCategories {
		slabs, ok := r.SlabsFor(age)
		if !ok {
			return fmt.Errorf("slabs for age category %s are required", age)
		}
		if err := validateSlabs(slabs); err != nil {
			return fmt.Errorf("slabs[%s]: %w", age, err)
		}
	}
	for age := range r.Slabs {
		if _, err := domain.ParseAgeCategory(string(age)); err != nil {
			return fmt.Errorf("slabs: %w", err)
		}
	}
	if err := validateSurchargeTiers(r.SurchargeTiers); err != nil {
		return fmt.Errorf("surcharge_tiers: %w", err)
	}
	return validateDeductionGroups(r.DeductionGroups)
}

func validateNewRegime(r *domain.NewRegimeRules) error {
	if r.StandardDeduction.IsNegative() {
		return fmt.Errorf("standard_deduction cannot be negative")
	}
	if err := validateRebate(r.Rebate); err != nil {
		return err
	}
	if err := validateSlabs(r.Slabs); err != nil {
		return fmt.Errorf("slabs: %w", err)
	}
	if err := validateSurchargeTiers(r.SurchargeTiers); err != nil {
		return fmt.Errorf("surcharge_tiers: %w", err)
	}
	return nil
}

func validateRebate(r domain.RebateRule) error {
	if r.IncomeLimit.IsNegative() {
		return fmt.Errorf("rebate.income_limit cannot be negative")
	}
	if r.MaxAmount != nil && r.MaxAmount.IsNegative() {
		return fmt.Errorf("rebate.max_amount cannot be negative")
	}
	return nil
}

func validateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", field, rate.String())
	}
	return nil
}

// validateSlabs enforces strictly increasing bounds, a single unbounded final
// slab and non-decreasing rates.
func validateSlabs(slabs []domain.Slab) error {
	if len(slabs) == 0 {
		return fmt.Errorf("at least one slab is required")
	}
	previousBound := decimal.Zero
	previousRate := decimal.Zero
	for i, slab := range slabs {
		if err := validateRate(fmt.Sprintf("slab %d rate", i), slab.Rate); err != nil {
			return err
		}
		if slab.Rate.LessThan(previousRate) {
			return fmt.Errorf("slab %d rate %s is lower than the previous rate %s", i, slab.Rate, previousRate)
		}
		previousRate = slab.Rate

		last := i == len(slabs)-1
		if slab.Unbounded() {
			if !last {
				return fmt.Errorf("only the final slab may be unbounded (slab %d)", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("the final slab must be unbounded")
		}
		if slab.UpperBound.LessThanOrEqual(previousBound) {
			return fmt.Errorf("slab %d upper bound %s must exceed %s", i, slab.UpperBound, previousBound)
		}
		previousBound = *slab.UpperBound
	}
	return nil
}

// validateSurchargeTiers enforces a zero first rate, strictly increasing
// thresholds and a single unbounded final tier.
func validateSurchargeTiers(tiers []domain.SurchargeTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	if !tiers[0].Rate.IsZero() {
		return fmt.Errorf("the first tier rate must be 0, got %s", tiers[0].Rate)
	}
	previous := decimal.Zero
	for i, tier := range tiers {
		if err := validateRate(fmt.Sprintf("tier %d rate", i), tier.Rate); err != nil {
			return err
		}
		last := i == len(tiers)-1
		if tier.Unbounded() {
			if !last {
				return fmt.Errorf("only the final tier may be unbounded (tier %d)", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("the final tier must be unbounded")
		}
		if tier.Threshold.LessThanOrEqual(previous) {
			return fmt.Errorf("tier %d threshold %s must exceed %s", i, tier.Threshold, previous)
		}
		previous = *tier.Threshold
	}
	return nil
}

func validateDeductionGroups(groups []domain.DeductionGroup) error {
	seen := make(map[domain.Section]string)
	for i, group := range groups {
		if group.Name == "" {
			return fmt.Errorf("deduction group %d: name is required", i)
		}
		if len(group.Sections) == 0 {
			return fmt.Errorf("deduction group %q: at least one section is required", group.Name)
		}
		if group.Cap != nil && group.Cap.IsNegative() {
			return fmt.Errorf("deduction group %q: cap cannot be negative", group.Name)
		}
		for _, s := range group.Sections {
			if s == domain.Section24B {
				return fmt.Errorf("deduction group %q: section 24B is a house property adjustment, not Chapter VI-A", group.Name)
			}
			if other, dup := seen[s]; dup {
				return fmt.Errorf("section %s appears in both %q and %q", s, other, group.Name)
			}
			seen[s] = group.Name
		}
	}
	return nil
}
