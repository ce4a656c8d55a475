package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// ParsedInput is a validated request plus notes about fields that were
// ignored or coerced to zero while reading deductions.
type ParsedInput struct {
	Request  domain.TaxRequest
	Warnings []string
}

// MissingAgeWarning is reported when an input omits age_category
const MissingAgeWarning = "age_category not given, assuming below_60"

// inputDocument mirrors the YAML input before numeric coercion
type inputDocument struct {
	GrossAnnualSalary   any            `yaml:"gross_annual_salary"`
	AgeCategory         string         `yaml:"age_category"`
	IsSalaried          *bool          `yaml:"is_salaried"`
	ProfessionalTaxPaid any            `yaml:"professional_tax_paid"`
	Deductions          map[string]any `yaml:"deductions"`
}

// LoadFromFile loads a taxpayer input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*ParsedInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a taxpayer input document
func (ip *InputParser) Parse(data []byte) (*ParsedInput, error) {
	var doc inputDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var errs []error
	salary, err := StrictAmount("gross_annual_salary", doc.GrossAnnualSalary)
	if err != nil {
		errs = append(errs, err)
	}
	professionalTax := decimal.Zero
	if doc.ProfessionalTaxPaid != nil {
		if professionalTax, err = StrictAmount("professional_tax_paid", doc.ProfessionalTaxPaid); err != nil {
			errs = append(errs, err)
		}
	}
	age := domain.AgeBelow60
	if doc.AgeCategory != "" {
		if age, err = domain.ParseAgeCategory(doc.AgeCategory); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("input validation failed: %w", errors.Join(errs...))
	}

	deductions, warnings := CoerceDeductions(doc.Deductions)
	if doc.AgeCategory == "" {
		warnings = append(warnings, MissingAgeWarning)
	}
	req := domain.TaxRequest{
		GrossAnnualSalary:   salary,
		AgeCategory:         age,
		Deductions:          deductions,
		IsSalaried:          lo.FromPtrOr(doc.IsSalaried, true),
		ProfessionalTaxPaid: professionalTax,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &ParsedInput{Request: req, Warnings: warnings}, nil
}

// CoerceDeductions converts raw deduction fields into DeductionInputs.
// It never fails: unknown sections are skipped and unreadable amounts count
// as zero, each producing a warning. Several keys naming the same section add up.
func CoerceDeductions(raw map[string]any) (domain.DeductionInputs, []string) {
	out := make(domain.DeductionInputs, len(raw))
	var warnings []string

	keys := lo.Keys(raw)
	sort.Strings(keys)
	for _, key := range keys {
		section, ok := domain.ParseSection(key)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ignoring unknown deduction section %q", key))
			continue
		}
		amount, ok := coerceAmount(raw[key])
		if !ok {
			warnings = append(warnings, fmt.Sprintf("deduction %s: %v is not a valid amount, using 0", key, raw[key]))
		}
		out[section] = out.Get(section).Add(amount)
	}
	return out, warnings
}

// coerceAmount converts a loosely typed value into a non-negative amount.
// Anything missing or not numeric gives zero; ok is false unless the value
// was absent or read cleanly.
func coerceAmount(v any) (decimal.Decimal, bool) {
	var d decimal.Decimal
	switch x := v.(type) {
	case nil:
		return decimal.Zero, true
	case decimal.Decimal:
		d = x
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case uint64:
		if x > math.MaxInt64 {
			return decimal.Zero, false
		}
		d = decimal.NewFromInt(int64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		d = decimal.NewFromFloat(x)
	case string:
		if strings.TrimSpace(x) == "" {
			return decimal.Zero, true
		}
		parsed, err := domain.ParseAmount("amount", x)
		if err != nil {
			return decimal.Zero, false
		}
		d = parsed
	default:
		return decimal.Zero, false
	}
	if d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// StrictAmount converts a loosely typed value into an amount, reporting a
// ValidationError for missing, non-numeric, non-finite or negative input.
func StrictAmount(field string, v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, &domain.ValidationError{Field: field, Reason: "is required"}
	case string:
		return domain.ParseAmount(field, x)
	case float64:
		return domain.AmountFromFloat(field, x)
	case int, int64, uint64, decimal.Decimal:
		d, ok := coerceAmount(x)
		if !ok {
			return decimal.Zero, &domain.ValidationError{Field: field, Value: fmt.Sprint(x), Reason: "must be a non-negative number"}
		}
		return d, nil
	default:
		return decimal.Zero, &domain.ValidationError{Field: field, Value: fmt.Sprint(x), Reason: "must be a number"}
	}
}
