// Package csvreport writes case reports as comma-separated text.
package csvreport

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/example/casedesk/internal/db"
	"github.com/example/casedesk/internal/ports/secondary"
)

// DefaultFilename is where reports go when no destination is given.
const DefaultFilename = "compliance_case_report.csv"

// Writer implements secondary.ReportWriter.
type Writer struct{}

// NewWriter creates a new CSV report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteReport writes a header row and one row per record, truncating any
// existing file at destination.
func (w *Writer) WriteReport(ctx context.Context, records []*secondary.CaseRecord, destination string) error {
	if destination == "" {
		destination = DefaultFilename
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := write(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}
	return nil
}

func write(f *os.File, records []*secondary.CaseRecord) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(db.Columns); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.CaseID,
			strconv.Itoa(r.TraderID),
			r.CaseType,
			strconv.Itoa(r.RiskScore),
			r.AssignedTo,
			r.Status,
			r.DateFlagged,
			r.Comments,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write case %s: %w", r.CaseID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// Ensure Writer implements the interface.
var _ secondary.ReportWriter = (*Writer)(nil)
