package breakeven

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
)

// SolveAllSections runs a break-even search for the first section of every
// Chapter VI-A deduction group and compares the results.
func (s *Solver) SolveAllSections(ctx context.Context, base domain.TaxRequest) (*MultiSectionResult, error) {
	sections := lo.FilterMap(s.Engine.Rules.OldRegime.DeductionGroups, func(g domain.DeductionGroup, _ int) (domain.Section, bool) {
		if len(g.Sections) == 0 {
			return "", false
		}
		return g.Sections[0], true
	})

	var results []Result
	for _, section := range sections {
		req := Request{
			Base:          base,
			Section:       section,
			MaxIterations: s.Options.MaxIterations,
			Resolution:    s.Options.Resolution,
		}

		result, err := s.Solve(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &BreakEvenError{
				Operation: "solve_all_sections",
				Message:   fmt.Sprintf("section %s", section),
				Cause:     err,
			}
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all_sections",
			Message:   "the rules define no deduction groups",
		}
	}

	msResult := &MultiSectionResult{
		Results: results,
	}

	// Cheapest reachable break-even
	for i := range results {
		if results[i].Outcome != OutcomeFound {
			continue
		}
		if msResult.Cheapest == nil || results[i].BreakEvenAmount.LessThan(msResult.Cheapest.BreakEvenAmount) {
			msResult.Cheapest = &results[i]
		}
	}

	msResult.Recommendations = s.generateMultiSectionRecommendations(msResult)

	return msResult, nil
}

// generateMultiSectionRecommendations creates recommendations from per-section results
func (s *Solver) generateMultiSectionRecommendations(result *MultiSectionResult) []string {
	var recommendations []string

	if lo.ContainsBy(result.Results, func(r Result) bool { return r.Outcome == OutcomeAlreadyFavoured }) {
		return append(recommendations, "The old regime already costs no more than the new regime; no extra deduction is needed")
	}

	if result.Cheapest != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Smallest extra claim that makes the old regime worthwhile: %s under section %s",
				compare.FormatRupees(result.Cheapest.BreakEvenAmount), result.Cheapest.Request.Section))
	}

	unreachable := lo.FilterMap(result.Results, func(r Result, _ int) (string, bool) {
		return string(r.Request.Section), r.Outcome == OutcomeUnreachable
	})
	if len(unreachable) == len(result.Results) {
		recommendations = append(recommendations,
			"No single section has enough room to make the old regime cheaper; stay with the new regime")
	} else if len(unreachable) > 0 {
		recommendations = append(recommendations,
			"Not enough room under: "+strings.Join(unreachable, ", "))
	}

	return recommendations
}
