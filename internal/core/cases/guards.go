package cases

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// UpdateCaseContext provides context for case update guards.
type UpdateCaseContext struct {
	CaseID string
	Status string
}

// FilterContext provides context for filter guards.
type FilterContext struct {
	MinRisk int
}

// CanUpdateCase evaluates whether a status/comments update may proceed.
// Rules:
// - Case ID must be non-empty
// - Status must be Open, In Progress or Closed
//
// A case ID that matches nothing is allowed; the update is then a no-op.
func CanUpdateCase(ctx UpdateCaseContext) GuardResult {
	if strings.TrimSpace(ctx.CaseID) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "case ID is required",
		}
	}

	if !IsValidStatus(ctx.Status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid status %q (must be one of: %s)", ctx.Status, strings.Join(Statuses, ", ")),
		}
	}

	return GuardResult{Allowed: true}
}

// CanFilter evaluates whether the selectors are usable.
// Rules:
// - Minimum risk must lie in 0..100
func CanFilter(ctx FilterContext) GuardResult {
	if ctx.MinRisk < MinRiskScore || ctx.MinRisk > MaxRiskScore {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("minimum risk %d out of range %d..%d", ctx.MinRisk, MinRiskScore, MaxRiskScore),
		}
	}

	return GuardResult{Allowed: true}
}
