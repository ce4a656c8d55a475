package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the extra Chapter VI-A deduction at which the old regime
// catches up with the new one.
type Solver struct {
	Engine  *calculation.TaxEngine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.TaxEngine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.TaxEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve bisects on the extra amount claimed under req.Section.
//
// Old regime liability never rises as deductions grow and the new regime
// ignores them, so the set of amounts where old <= new is an interval
// [x, room]. The search keeps lo infeasible and hi feasible, counted in
// whole steps of the resolution.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = DefaultSolverOptions().MaxIterations
	}
	if !req.Resolution.IsPositive() {
		req.Resolution = s.Options.Resolution
	}
	if !req.Resolution.IsPositive() {
		req.Resolution = decimal.NewFromInt(1)
	}

	rules := s.Engine.Rules.OldRegime
	room, capped, ok := calculation.RemainingCapacity(req.Base.Deductions, rules.DeductionGroups, req.Section)
	if !ok {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("section %s belongs to no deduction group in the %s rules", req.Section, s.Engine.Rules.Metadata.FiscalYear),
		}
	}

	base, err := s.evaluate(req, decimal.Zero)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Request:          req,
		Room:             room,
		Capped:           capped,
		BaseOldLiability: base.OldRegime.TaxLiability,
		OldLiability:     base.OldRegime.TaxLiability,
		NewLiability:     base.NewRegime.TaxLiability,
	}

	if feasible(base) {
		result.Outcome = OutcomeAlreadyFavoured
		result.Success = true
		result.ConvergenceInfo = "Old regime already costs no more than the new regime"
		return result, nil
	}

	// Past the taxable income no further deduction changes anything
	ceiling := room
	if !capped {
		ceiling = base.OldRegime.TaxableIncome
	}
	hi := ceiling.Div(req.Resolution).Ceil().IntPart()
	if hi <= 0 {
		result.Outcome = OutcomeUnreachable
		result.ConvergenceInfo = fmt.Sprintf("No room left under section %s", req.Section)
		return result, nil
	}

	top, err := s.evaluate(req, s.amount(req, hi, ceiling))
	if err != nil {
		return nil, err
	}
	if !feasible(top) {
		result.Outcome = OutcomeUnreachable
		result.OldLiability = top.OldRegime.TaxLiability
		result.ConvergenceInfo = fmt.Sprintf("Claiming the full remaining %s under section %s still leaves the old regime %s higher",
			ceiling.StringFixed(0), req.Section, top.OldRegime.TaxLiability.Sub(top.NewRegime.TaxLiability).StringFixed(2))
		return result, nil
	}

	log := s.Engine.Logger
	if log == nil {
		log = calculation.NopLogger{}
	}

	var lo int64
	best := top
	iterations := 0
	for hi-lo > 1 {
		if iterations >= req.MaxIterations {
			break
		}
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo + (hi-lo)/2
		summary, err := s.evaluate(req, s.amount(req, mid, ceiling))
		if err != nil {
			return nil, err
		}
		if feasible(summary) {
			hi = mid
			best = summary
		} else {
			lo = mid
		}
		log.Debugf("break-even %s: step %d, bracket [%d, %d] x %s", req.Section, iterations, lo, hi, req.Resolution.String())
	}

	result.Iterations = iterations
	result.BreakEvenAmount = s.amount(req, hi, ceiling)
	result.OldLiability = best.OldRegime.TaxLiability
	result.NewLiability = best.NewRegime.TaxLiability
	result.Outcome = OutcomeFound
	if hi-lo > 1 {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached, amount is an upper bound", req.MaxIterations)
		return result, nil
	}
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Bisection converged to within %s", req.Resolution.String())
	return result, nil
}

// amount converts a step count to rupees, never past the ceiling
func (s *Solver) amount(req Request, steps int64, ceiling decimal.Decimal) decimal.Decimal {
	return decimal.Min(req.Resolution.Mul(decimal.NewFromInt(steps)), ceiling)
}

func (s *Solver) evaluate(req Request, extra decimal.Decimal) (*domain.ComparisonResult, error) {
	modified := req.Base
	modified.Deductions = req.Base.Deductions.With(req.Section, extra)

	summary, err := s.Engine.CalculateTax(modified)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to calculate comparison",
			Cause:     err,
		}
	}
	return summary, nil
}

func feasible(c *domain.ComparisonResult) bool {
	return c.OldRegime.TaxLiability.LessThanOrEqual(c.NewRegime.TaxLiability)
}
