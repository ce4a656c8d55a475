package main

import (
	"errors"

	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// addRequestFlags registers the taxpayer flags shared by every computing command
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Taxpayer input file (YAML or JSON)")
	cmd.Flags().StringP("salary", "s", "", "Gross annual salary in rupees")
	cmd.Flags().StringP("age", "a", string(domain.AgeBelow60), "Age category: below_60, 60_to_80, above_80")
	cmd.Flags().Bool("salaried", true, "Apply the salaried standard deduction")
	cmd.Flags().String("professional-tax", "", "Professional tax paid in rupees")
	cmd.Flags().StringToStringP("deduction", "d", nil, "Deduction claimed, e.g. --deduction 80C=150000 (repeatable)")
}

// requestFromFlags reads the input file when given and lets explicit flags
// override it. Salary is required unless requireSalary is false.
func requestFromFlags(cmd *cobra.Command, requireSalary bool) (*config.ParsedInput, error) {
	parsed := &config.ParsedInput{
		Request: domain.TaxRequest{
			AgeCategory: domain.AgeBelow60,
			IsSalaried:  true,
			Deductions:  domain.DeductionInputs{},
		},
	}

	if inputFile, _ := cmd.Flags().GetString("input"); inputFile != "" {
		loaded, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return nil, err
		}
		parsed = loaded
	} else if requireSalary && !cmd.Flags().Changed("salary") {
		return nil, errors.New("either --input or --salary is required")
	}

	var errs []error
	req := &parsed.Request
	if cmd.Flags().Changed("salary") {
		salary, _ := cmd.Flags().GetString("salary")
		amount, err := domain.ParseAmount("salary", salary)
		if err != nil {
			errs = append(errs, err)
		}
		req.GrossAnnualSalary = amount
	}
	if cmd.Flags().Changed("age") {
		ageFlag, _ := cmd.Flags().GetString("age")
		age, err := domain.ParseAgeCategory(ageFlag)
		if err != nil {
			errs = append(errs, err)
		}
		req.AgeCategory = age
		parsed.Warnings = lo.Without(parsed.Warnings, config.MissingAgeWarning)
	}
	if cmd.Flags().Changed("salaried") {
		req.IsSalaried, _ = cmd.Flags().GetBool("salaried")
	}
	if cmd.Flags().Changed("professional-tax") {
		pt, _ := cmd.Flags().GetString("professional-tax")
		amount, err := domain.ParseAmount("professional-tax", pt)
		if err != nil {
			errs = append(errs, err)
		}
		req.ProfessionalTaxPaid = amount
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if cmd.Flags().Changed("deduction") {
		flagDeductions, _ := cmd.Flags().GetStringToString("deduction")
		raw := make(map[string]any, len(flagDeductions))
		for k, v := range flagDeductions {
			raw[k] = v
		}
		coerced, warnings := config.CoerceDeductions(raw)
		merged := make(domain.DeductionInputs, len(req.Deductions)+len(coerced))
		for s, v := range req.Deductions {
			merged[s] = v
		}
		for s, v := range coerced {
			merged[s] = v
		}
		req.Deductions = merged
		parsed.Warnings = append(parsed.Warnings, warnings...)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return parsed, nil
}
