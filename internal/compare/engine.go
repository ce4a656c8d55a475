package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
)

// CompareEngine turns taxpayer requests into comparison reports
type CompareEngine struct {
	Engine *calculation.TaxEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.TaxEngine) *CompareEngine {
	return &CompareEngine{Engine: engine}
}

// Compare runs the regime comparison for req. Warnings collected while
// reading the input are carried into the report unchanged.
func (ce *CompareEngine) Compare(req domain.TaxRequest, warnings []string) (*Report, error) {
	result, err := ce.Engine.CalculateTax(req)
	if err != nil {
		return nil, fmt.Errorf("failed to compare regimes: %w", err)
	}

	return &Report{
		Input:           req,
		Result:          result,
		Recommendations: GenerateRecommendations(result),
		Warnings:        warnings,
	}, nil
}
