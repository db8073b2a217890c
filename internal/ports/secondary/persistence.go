// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"fmt"
)

// CaseRecord represents a case as stored in persistence.
// Field names mirror the table's column names.
type CaseRecord struct {
	CaseID      string
	TraderID    int
	CaseType    string
	RiskScore   int
	AssignedTo  string
	Status      string
	DateFlagged string
	Comments    string
}

// CaseRepository defines the secondary port for the cases table.
// The table is only ever read whole and written whole.
type CaseRepository interface {
	// ReadAll reads every row. Failures are returned as *ReadFailure.
	ReadAll(ctx context.Context) ([]*CaseRecord, error)

	// ReplaceAll drops the table and recreates it holding exactly records.
	// The replace is atomic: on error the previous table is left intact.
	ReplaceAll(ctx context.Context, records []*CaseRecord) error

	// Quarantine renames an unreadable table out of the way and returns
	// its new name.
	Quarantine(ctx context.Context) (string, error)
}

// ReportWriter defines the secondary port for exporting cases as a report.
type ReportWriter interface {
	// WriteReport writes records to destination, replacing any existing file.
	WriteReport(ctx context.Context, records []*CaseRecord, destination string) error
}

// ReadFailureKind classifies why the table could not be read.
type ReadFailureKind string

const (
	// ReadMissing means the table does not exist (first run).
	ReadMissing ReadFailureKind = "missing"
	// ReadCorrupt means the table exists but its rows could not be read.
	ReadCorrupt ReadFailureKind = "corrupt"
	// ReadUnreachable means the database itself could not be queried.
	ReadUnreachable ReadFailureKind = "unreachable"
)

// ReadFailure is returned by CaseRepository.ReadAll.
type ReadFailure struct {
	Kind ReadFailureKind
	Err  error
}

func (e *ReadFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cases table %s", e.Kind)
	}
	return fmt.Sprintf("cases table %s: %v", e.Kind, e.Err)
}

func (e *ReadFailure) Unwrap() error { return e.Err }

// AsReadFailure extracts a *ReadFailure from err. Errors that are not
// classified are reported as unreachable.
func AsReadFailure(err error) *ReadFailure {
	var rf *ReadFailure
	if errors.As(err, &rf) {
		return rf
	}
	return &ReadFailure{Kind: ReadUnreachable, Err: err}
}
