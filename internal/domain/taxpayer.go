package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AgeCategory selects the old-regime slab table
type AgeCategory string

const (
	AgeBelow60       AgeCategory = "below_60"
	AgeSenior60To80  AgeCategory = "60_to_80"
	AgeSuperSenior80 AgeCategory = "above_80"
)

// AgeCategories lists the recognized categories in display order
var AgeCategories = []AgeCategory{AgeBelow60, AgeSenior60To80, AgeSuperSenior80}

// ParseAgeCategory converts user input into an AgeCategory
func ParseAgeCategory(s string) (AgeCategory, error) {
	age := AgeCategory(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(AgeCategories, age) {
		return "", &ValidationError{
			Field:  "age_category",
			Value:  s,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(lo.Map(AgeCategories, func(a AgeCategory, _ int) string { return string(a) }), ", ")),
		}
	}
	return age, nil
}

// Label returns a human readable label
func (a AgeCategory) Label() string {
	switch a {
	case AgeBelow60:
		return "Below 60"
	case AgeSenior60To80:
		return "60 to 80"
	case AgeSuperSenior80:
		return "Above 80"
	default:
		return string(a)
	}
}

// Regime identifies one of the two tax regimes
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// TaxRequest holds the caller-supplied inputs for a regime comparison
type TaxRequest struct {
	GrossAnnualSalary   decimal.Decimal `yaml:"gross_annual_salary" json:"gross_annual_salary"`
	AgeCategory         AgeCategory     `yaml:"age_category" json:"age_category"`
	Deductions          DeductionInputs `yaml:"deductions" json:"deductions"`
	IsSalaried          bool            `yaml:"is_salaried" json:"is_salaried"`
	ProfessionalTaxPaid decimal.Decimal `yaml:"professional_tax_paid" json:"professional_tax_paid"`
}

// Validate checks the request and reports every problem found
func (r TaxRequest) Validate() error {
	var errs []error
	if r.GrossAnnualSalary.IsNegative() {
		errs = append(errs, &ValidationError{Field: "gross_annual_salary", Value: r.GrossAnnualSalary.String(), Reason: "cannot be negative"})
	}
	if r.ProfessionalTaxPaid.IsNegative() {
		errs = append(errs, &ValidationError{Field: "professional_tax_paid", Value: r.ProfessionalTaxPaid.String(), Reason: "cannot be negative"})
	}
	if _, err := ParseAgeCategory(string(r.AgeCategory)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidationError reports a caller input that cannot be used
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseAmount parses a strictly numeric, non-negative monetary amount.
// Indian digit grouping ("10,00,000") and an optional rupee sign are accepted.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "_", "", "₹", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, &ValidationError{Field: field, Value: s, Reason: "is required"}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Value: s, Reason: "must be a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Value: s, Reason: "cannot be negative"}
	}
	return d, nil
}

// AmountFromFloat converts a float input, rejecting NaN, infinities and negatives
func AmountFromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ValidationError{Field: field, Value: fmt.Sprint(f), Reason: "must be a finite number"}
	}
	if f < 0 {
		return decimal.Zero, &ValidationError{Field: field, Value: fmt.Sprint(f), Reason: "cannot be negative"}
	}
	return decimal.NewFromFloat(f), nil
}
