// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/example/casedesk/internal/db"
)

// drivers lists every driver the repository must work with.
var drivers = []string{db.DriverCGO, db.DriverPure}

// setupTestDB creates an in-memory database without the cases table.
func setupTestDB(t *testing.T, driver string) *sql.DB {
	t.Helper()

	testDB, err := db.Open(driver, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupSchemaDB creates an in-memory database with the authoritative schema.
func setupSchemaDB(t *testing.T, driver string) *sql.DB {
	t.Helper()

	testDB := setupTestDB(t, driver)
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return testDB
}

// seedCase inserts a single case row.
func seedCase(t *testing.T, testDB *sql.DB, id string, risk int, status string) {
	t.Helper()
	_, err := testDB.Exec(
		"INSERT INTO cases (Case_ID, Trader_ID, Case_Type, Risk_Score, Assigned_To, Status, Date_Flagged, Comments) VALUES (?, 1500, 'Wash Trading', ?, 'Analyst A', ?, '2025-01-01', '-')",
		id, risk, status,
	)
	if err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
}
