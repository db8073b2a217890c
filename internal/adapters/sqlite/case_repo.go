// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/casedesk/internal/core/cases"
	"github.com/example/casedesk/internal/db"
	"github.com/example/casedesk/internal/ports/secondary"
)

// CaseRepository implements secondary.CaseRepository with SQLite.
type CaseRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCaseRepository creates a new SQLite case repository.
func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db, now: time.Now}
}

// ReadAll reads every row with SELECT *. Columns are matched by name, so a
// table whose columns were reordered still reads; a table missing any
// expected column is reported as corrupt.
func (r *CaseRepository) ReadAll(ctx context.Context) ([]*secondary.CaseRecord, error) {
	exists, err := r.tableExists(ctx, db.CasesTable)
	if err != nil {
		return nil, &secondary.ReadFailure{Kind: secondary.ReadUnreachable, Err: err}
	}
	if !exists {
		return nil, &secondary.ReadFailure{Kind: secondary.ReadMissing}
	}

	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+db.CasesTable)
	if err != nil {
		return nil, &secondary.ReadFailure{Kind: secondary.ReadCorrupt, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &secondary.ReadFailure{Kind: secondary.ReadCorrupt, Err: err}
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	for _, want := range db.Columns {
		if _, ok := index[want]; !ok {
			return nil, &secondary.ReadFailure{
				Kind: secondary.ReadCorrupt,
				Err:  fmt.Errorf("missing column %s", want),
			}
		}
	}

	var records []*secondary.CaseRecord
	for rows.Next() {
		var (
			caseID, caseType, assignedTo sql.NullString
			status, dateFlagged, comment sql.NullString
			traderID, riskScore          sql.NullInt64
		)
		dest := make([]any, len(cols))
		for i := range dest {
			var discard any
			dest[i] = &discard
		}
		dest[index["Case_ID"]] = &caseID
		dest[index["Trader_ID"]] = &traderID
		dest[index["Case_Type"]] = &caseType
		dest[index["Risk_Score"]] = &riskScore
		dest[index["Assigned_To"]] = &assignedTo
		dest[index["Status"]] = &status
		dest[index["Date_Flagged"]] = &dateFlagged
		dest[index["Comments"]] = &comment

		if err := rows.Scan(dest...); err != nil {
			return nil, &secondary.ReadFailure{Kind: secondary.ReadCorrupt, Err: fmt.Errorf("failed to scan case: %w", err)}
		}
		if !caseID.Valid || !traderID.Valid || !caseType.Valid || !riskScore.Valid ||
			!assignedTo.Valid || !status.Valid || !dateFlagged.Valid || !comment.Valid {
			return nil, &secondary.ReadFailure{
				Kind: secondary.ReadCorrupt,
				Err:  fmt.Errorf("null column in row %d", len(records)+1),
			}
		}

		record := &secondary.CaseRecord{
			CaseID:      caseID.String,
			TraderID:    int(traderID.Int64),
			CaseType:    caseType.String,
			RiskScore:   int(riskScore.Int64),
			AssignedTo:  assignedTo.String,
			Status:      status.String,
			DateFlagged: dateFlagged.String,
			Comments:    comment.String,
		}
		if err := checkRecord(record); err != nil {
			return nil, &secondary.ReadFailure{Kind: secondary.ReadCorrupt, Err: err}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &secondary.ReadFailure{Kind: secondary.ReadCorrupt, Err: err}
	}

	return records, nil
}

// checkRecord applies the schema's CHECK constraints to a row read back, so
// every loaded set can be saved again.
func checkRecord(r *secondary.CaseRecord) error {
	if !cases.IsValidStatus(r.Status) {
		return fmt.Errorf("case %s has invalid status %q", r.CaseID, r.Status)
	}
	if r.RiskScore < cases.MinRiskScore || r.RiskScore > cases.MaxRiskScore {
		return fmt.Errorf("case %s has risk score %d outside %d..%d",
			r.CaseID, r.RiskScore, cases.MinRiskScore, cases.MaxRiskScore)
	}
	return nil
}

// ReplaceAll drops and recreates the table with exactly records, in one
// transaction. A failed insert rolls back to the previous table.
func (r *CaseRepository) ReplaceAll(ctx context.Context, records []*secondary.CaseRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+db.CasesTable); err != nil {
		return fmt.Errorf("failed to drop cases table: %w", err)
	}
	if _, err = tx.ExecContext(ctx, db.SchemaSQL); err != nil {
		return fmt.Errorf("failed to create cases table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		db.CasesTable, strings.Join(db.Columns, ", "),
	))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err = stmt.ExecContext(ctx,
			rec.CaseID, rec.TraderID, rec.CaseType, rec.RiskScore,
			rec.AssignedTo, rec.Status, rec.DateFlagged, rec.Comments,
		); err != nil {
			return fmt.Errorf("failed to insert case %s: %w", rec.CaseID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cases: %w", err)
	}
	return nil
}

// Quarantine renames the cases table to cases_corrupt_<UTC timestamp>.
func (r *CaseRepository) Quarantine(ctx context.Context) (string, error) {
	base := fmt.Sprintf("%s_corrupt_%s", db.CasesTable, r.now().UTC().Format("20060102T150405Z"))
	name := base
	for i := 2; ; i++ {
		exists, err := r.tableExists(ctx, name)
		if err != nil {
			return "", fmt.Errorf("failed to check quarantine table: %w", err)
		}
		if !exists {
			break
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}

	_, err := r.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %q", db.CasesTable, name))
	if err != nil {
		return "", fmt.Errorf("failed to quarantine cases table: %w", err)
	}
	return name, nil
}

func (r *CaseRepository) tableExists(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ensure CaseRepository implements the interface.
var _ secondary.CaseRepository = (*CaseRepository)(nil)
