// Package cases contains the pure business logic for compliance cases.
// Nothing in this package touches storage; callers pass the in-memory set in
// and get results back.
package cases

// Status values.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// Case type labels.
const (
	TypeInsiderTrading     = "Insider Trading"
	TypeWashTrading        = "Wash Trading"
	TypeSanctionsViolation = "Sanctions Violation"
	TypeAMLViolation       = "AML Violation"
)

// Sentinels for the analyst and comment columns.
const (
	Unassigned     = "Unassigned"
	DefaultComment = "-"
)

// Risk score domain, inclusive on both ends.
const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// Statuses lists the valid status values in display order.
var Statuses = []string{StatusOpen, StatusInProgress, StatusClosed}

// CaseTypes lists the case type labels in display order.
var CaseTypes = []string{TypeInsiderTrading, TypeWashTrading, TypeSanctionsViolation, TypeAMLViolation}

// Analysts lists the values the generator assigns cases to.
var Analysts = []string{"Analyst A", "Analyst B", Unassigned}

// Case is one compliance case.
type Case struct {
	CaseID      string
	TraderID    int
	CaseType    string
	RiskScore   int
	AssignedTo  string
	Status      string
	DateFlagged string
	Comments    string
}

// Clone returns a deep copy of the set. Each case is copied so mutations on
// the result never reach the input.
func Clone(set []*Case) []*Case {
	out := make([]*Case, len(set))
	for i, c := range set {
		cp := *c
		out[i] = &cp
	}
	return out
}

// IsValidStatus reports whether s is one of the three statuses.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Options returns the distinct statuses and case types present in the set,
// in first-seen order.
func Options(set []*Case) (statuses, caseTypes []string) {
	seenStatus := make(map[string]bool)
	seenType := make(map[string]bool)
	for _, c := range set {
		if !seenStatus[c.Status] {
			seenStatus[c.Status] = true
			statuses = append(statuses, c.Status)
		}
		if !seenType[c.CaseType] {
			seenType[c.CaseType] = true
			caseTypes = append(caseTypes, c.CaseType)
		}
	}
	return statuses, caseTypes
}
