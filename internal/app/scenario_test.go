package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/casedesk/internal/adapters/csvreport"
	"github.com/example/casedesk/internal/adapters/sqlite"
	"github.com/example/casedesk/internal/core/cases"
	"github.com/example/casedesk/internal/db"
	"github.com/example/casedesk/internal/ports/primary"
)

// TestScenario_EndToEnd walks the dashboard flow against a real database:
// first-run seed, filter, update, reload, export.
func TestScenario_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Open(db.DriverCGO, filepath.Join(dir, "cases.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer database.Close()

	service := NewCaseService(sqlite.NewCaseRepository(database), csvreport.NewWriter(), CaseServiceOptions{
		Logger: discardLogger(),
		Rand:   rand.New(rand.NewPCG(2025, 1)),
	})
	ctx := context.Background()

	// Fresh store seeds C1..C100.
	first, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first.Source != primary.SourceSeeded || len(first.Cases) != 100 {
		t.Fatalf("expected 100 seeded cases, got %s/%d", first.Source, len(first.Cases))
	}
	for i, c := range first.Cases {
		if c.CaseID != fmt.Sprintf("C%d", i+1) {
			t.Fatalf("case %d has ID %s", i, c.CaseID)
		}
	}

	// A second load reads exactly what was seeded.
	second, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if second.Source != primary.SourceStore {
		t.Errorf("expected store source, got %s", second.Source)
	}
	for i := range first.Cases {
		if *first.Cases[i] != *second.Cases[i] {
			t.Fatalf("case %d differs after reload: %+v vs %+v", i, first.Cases[i], second.Cases[i])
		}
	}

	// Open cases at risk >= 50 across every type.
	filtered, err := service.Filter(second.Cases, primary.FilterRequest{
		Statuses:  []string{cases.StatusOpen},
		MinRisk:   50,
		CaseTypes: cases.CaseTypes,
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	for _, c := range filtered {
		if c.Status != cases.StatusOpen || c.RiskScore < 50 {
			t.Errorf("filter leaked %+v", c)
		}
	}

	// Close C5, reload, and find it closed.
	if _, err := service.CommitUpdate(ctx, second.Cases, primary.UpdateCaseRequest{
		CaseID: "C5", Status: cases.StatusClosed, Comments: "reviewed",
	}); err != nil {
		t.Fatalf("CommitUpdate failed: %v", err)
	}
	third, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("third Load failed: %v", err)
	}
	c5 := third.Cases[4]
	if c5.CaseID != "C5" || c5.Status != cases.StatusClosed || c5.Comments != "reviewed" {
		t.Errorf("C5 after reload = %+v", c5)
	}

	// Export writes a header plus one row per filtered case.
	report := filepath.Join(dir, "report.csv")
	if err := service.Export(ctx, filtered, report); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	f, err := os.Open(report)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}
	if len(rows) != len(filtered)+1 {
		t.Errorf("expected %d rows, got %d", len(filtered)+1, len(rows))
	}
}

// TestScenario_CorruptStoreReseeds checks that an unreadable table yields a
// fresh seed while the old table is kept aside.
func TestScenario_CorruptStoreReseeds(t *testing.T) {
	database, err := db.Open(db.DriverPure, ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec("CREATE TABLE cases (garbage BLOB)"); err != nil {
		t.Fatalf("failed to create corrupt table: %v", err)
	}

	service := NewCaseService(sqlite.NewCaseRepository(database), csvreport.NewWriter(), CaseServiceOptions{
		Logger: discardLogger(),
	})

	resp, err := service.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(resp.Cases) != 100 || resp.FailureKind != "corrupt" {
		t.Errorf("expected 100 cases from a corrupt reseed, got %d/%s", len(resp.Cases), resp.FailureKind)
	}
	if resp.QuarantinedTable == "" {
		t.Fatal("expected corrupt table to be quarantined")
	}
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = ?", resp.QuarantinedTable).Scan(&n); err != nil || n != 1 {
		t.Errorf("quarantined table missing (n=%d, err=%v)", n, err)
	}
}

// TestScenario_InvalidRowIsQuarantined checks that a table another writer
// left with a row the schema would refuse is reseeded rather than loaded,
// so later updates can still be saved.
func TestScenario_InvalidRowIsQuarantined(t *testing.T) {
	database, err := db.Open(db.DriverCGO, ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer database.Close()

	_, err = database.Exec(`CREATE TABLE cases (
		Case_ID TEXT, Trader_ID INTEGER, Case_Type TEXT, Risk_Score INTEGER,
		Assigned_To TEXT, Status TEXT, Date_Flagged TEXT, Comments TEXT)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	_, err = database.Exec(`INSERT INTO cases VALUES
		('C1', 1000, 'Wash Trading', 50, 'Analyst A', 'Open', '2025-01-01', '-'),
		('C2', 1001, 'Wash Trading', 60, 'Analyst A', NULL, '2025-01-02', '-')`)
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	service := NewCaseService(sqlite.NewCaseRepository(database), csvreport.NewWriter(), CaseServiceOptions{
		Logger: discardLogger(),
	})
	ctx := context.Background()

	resp, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if resp.Source != primary.SourceSeeded || resp.FailureKind != "corrupt" {
		t.Fatalf("expected corrupt reseed, got %s/%s", resp.Source, resp.FailureKind)
	}
	if resp.QuarantinedTable == "" {
		t.Error("expected the invalid table to be quarantined")
	}

	if _, err := service.CommitUpdate(ctx, resp.Cases, primary.UpdateCaseRequest{
		CaseID: "C1", Status: cases.StatusClosed,
	}); err != nil {
		t.Fatalf("CommitUpdate after reseed failed: %v", err)
	}
}
