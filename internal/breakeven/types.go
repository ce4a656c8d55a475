package breakeven

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Outcome classifies how a break-even search ended
type Outcome string

const (
	// OutcomeAlreadyFavoured means the old regime already costs no more than the new one
	OutcomeAlreadyFavoured Outcome = "already_favoured"
	// OutcomeFound means an extra deduction within the section's room closes the gap
	OutcomeFound Outcome = "found"
	// OutcomeUnreachable means even the full remaining room is not enough
	OutcomeUnreachable Outcome = "unreachable"
)

// Request defines one break-even search
type Request struct {
	Base          domain.TaxRequest `json:"base"`
	Section       domain.Section    `json:"section"`
	MaxIterations int               `json:"max_iterations,omitempty"` // Maximum bisection steps
	Resolution    decimal.Decimal   `json:"resolution,omitempty"`     // Smallest amount step, in rupees
}

// Result contains the outcome of a break-even search
type Result struct {
	Request         Request `json:"request"`
	Outcome         Outcome `json:"outcome"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	// BreakEvenAmount is the smallest extra deduction at which the old regime
	// liability no longer exceeds the new regime liability.
	BreakEvenAmount decimal.Decimal `json:"break_even_amount"`
	// Room is how much more the section's group accepts; zero when uncapped
	Room   decimal.Decimal `json:"room"`
	Capped bool            `json:"capped"`

	BaseOldLiability decimal.Decimal `json:"base_old_liability"`
	OldLiability     decimal.Decimal `json:"old_liability"`
	NewLiability     decimal.Decimal `json:"new_liability"`
}

// MultiSectionResult compares break-even searches across deduction groups
type MultiSectionResult struct {
	Results         []Result `json:"results"`
	Cheapest        *Result  `json:"cheapest,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Resolution    decimal.Decimal // Amount step the search resolves to
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Resolution:    decimal.NewFromInt(1), // one rupee
		MaxIterations: 100,
	}
}

// Validate checks the request for consistency
func (r *Request) Validate() error {
	if r.Section == "" {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "deduction section is required",
		}
	}
	if r.Section == domain.Section24B {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "section 24B is a house property adjustment, choose a Chapter VI-A section",
		}
	}
	if r.Resolution.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "resolution cannot be negative",
		}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max_iterations cannot be negative",
		}
	}
	if err := r.Base.Validate(); err != nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "invalid base request",
			Cause:     err,
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
