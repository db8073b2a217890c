// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI and HTTP presentations call.
package primary

import (
	"context"

	"github.com/shopspring/decimal"
)

// CaseService defines the primary port for case operations.
// It holds no case state of its own; the in-memory set is passed in.
type CaseService interface {
	// Seed generates a fresh batch of sample cases and replaces the table with it.
	Seed(ctx context.Context) ([]*Case, error)

	// Load reads every case, falling back to Seed when the table cannot be read.
	Load(ctx context.Context) (*LoadResponse, error)

	// Filter returns the cases matching the request. It has no side effects.
	Filter(cases []*Case, req FilterRequest) ([]*Case, error)

	// Update overwrites status and comments on matching cases in place
	// and returns how many were touched. Nothing is persisted.
	Update(cases []*Case, req UpdateCaseRequest) (int, error)

	// Save replaces the whole table with cases.
	Save(ctx context.Context, cases []*Case) error

	// CommitUpdate applies an update to a copy of cases and saves it in one
	// step. The input is never mutated; the new set is returned on success.
	CommitUpdate(ctx context.Context, cases []*Case, req UpdateCaseRequest) (*CommitUpdateResponse, error)

	// Export writes cases to destination as CSV, overwriting it.
	Export(ctx context.Context, cases []*Case, destination string) error

	// Summarize computes the risk histogram and status breakdown.
	Summarize(cases []*Case) *Summary

	// Options returns the statuses and case types present in cases.
	Options(cases []*Case) *FilterOptions
}

// Load sources.
const (
	SourceStore  = "store"
	SourceSeeded = "seeded"
)

// LoadResponse contains the result of loading the table.
type LoadResponse struct {
	Cases []*Case
	// Source is SourceStore or SourceSeeded.
	Source string
	// FailureKind says why seeding happened (missing, corrupt, unreachable).
	FailureKind string
	// QuarantinedTable is set when an unreadable table was kept aside.
	QuarantinedTable string
}

// FilterRequest contains the three dashboard selectors.
// Empty status or case type sets select nothing.
type FilterRequest struct {
	Statuses  []string
	MinRisk   int
	CaseTypes []string
}

// UpdateCaseRequest contains parameters for updating a case.
type UpdateCaseRequest struct {
	CaseID   string
	Status   string
	Comments string
}

// CommitUpdateResponse contains the result of a committed update.
type CommitUpdateResponse struct {
	Cases   []*Case
	Updated int
}

// FilterOptions lists the distinct values present in a set.
type FilterOptions struct {
	Statuses  []string
	CaseTypes []string
}

// Case represents a compliance case at the port boundary.
type Case struct {
	CaseID      string `json:"Case_ID"`
	TraderID    int    `json:"Trader_ID"`
	CaseType    string `json:"Case_Type"`
	RiskScore   int    `json:"Risk_Score"`
	AssignedTo  string `json:"Assigned_To"`
	Status      string `json:"Status"`
	DateFlagged string `json:"Date_Flagged"`
	Comments    string `json:"Comments"`
}

// Summary is the data behind the dashboard's two charts.
type Summary struct {
	Total     int             `json:"total"`
	MeanRisk  decimal.Decimal `json:"mean_risk"`
	RiskBins  []RiskBin       `json:"risk_bins"`
	Breakdown []StatusShare   `json:"status_breakdown"`
}

// RiskBin is one histogram bar. Upper is exclusive except for the last bin.
type RiskBin struct {
	Lower  int            `json:"lower"`
	Upper  int            `json:"upper"`
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// StatusShare is one slice of the status breakdown.
type StatusShare struct {
	Status  string          `json:"status"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}
