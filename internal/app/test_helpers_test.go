package app

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/example/casedesk/internal/ports/primary"
	"github.com/example/casedesk/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces.
var (
	_ secondary.CaseRepository = (*mockCaseRepository)(nil)
	_ secondary.ReportWriter   = (*mockReportWriter)(nil)
)

// mockCaseRepository implements secondary.CaseRepository for testing.
type mockCaseRepository struct {
	records       []*secondary.CaseRecord
	readErr       error
	replaceErr    error
	quarantineErr error

	replaceCalls int
	quarantined  []string
}

func newMockCaseRepository() *mockCaseRepository {
	return &mockCaseRepository{}
}

func (m *mockCaseRepository) ReadAll(ctx context.Context) ([]*secondary.CaseRecord, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]*secondary.CaseRecord, len(m.records))
	for i, r := range m.records {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

func (m *mockCaseRepository) ReplaceAll(ctx context.Context, records []*secondary.CaseRecord) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.records = make([]*secondary.CaseRecord, len(records))
	for i, r := range records {
		cp := *r
		m.records[i] = &cp
	}
	// A successful write makes the table readable again.
	m.readErr = nil
	return nil
}

func (m *mockCaseRepository) Quarantine(ctx context.Context) (string, error) {
	if m.quarantineErr != nil {
		return "", m.quarantineErr
	}
	name := "cases_corrupt_test"
	m.quarantined = append(m.quarantined, name)
	return name, nil
}

// mockReportWriter implements secondary.ReportWriter for testing.
type mockReportWriter struct {
	written  map[string][]*secondary.CaseRecord
	writeErr error
}

func newMockReportWriter() *mockReportWriter {
	return &mockReportWriter{written: make(map[string][]*secondary.CaseRecord)}
}

func (m *mockReportWriter) WriteReport(ctx context.Context, records []*secondary.CaseRecord, destination string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written[destination] = records
	return nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCaseService() (*CaseServiceImpl, *mockCaseRepository, *mockReportWriter) {
	repo := newMockCaseRepository()
	writer := newMockReportWriter()
	service := NewCaseService(repo, writer, CaseServiceOptions{
		Logger: discardLogger(),
		Rand:   rand.New(rand.NewPCG(11, 13)),
	})
	return service, repo, writer
}

func testCases() []*primary.Case {
	return []*primary.Case{
		{CaseID: "C1", TraderID: 1001, CaseType: "Wash Trading", RiskScore: 80, AssignedTo: "Analyst A", Status: "Open", DateFlagged: "2025-01-01", Comments: "-"},
		{CaseID: "C2", TraderID: 1002, CaseType: "AML Violation", RiskScore: 30, AssignedTo: "Analyst B", Status: "Closed", DateFlagged: "2025-01-02", Comments: "-"},
		{CaseID: "C3", TraderID: 1003, CaseType: "Insider Trading", RiskScore: 55, AssignedTo: "Unassigned", Status: "In Progress", DateFlagged: "2025-01-03", Comments: "-"},
	}
}

func caseIDs(set []*primary.Case) []string {
	out := make([]string, len(set))
	for i, c := range set {
		out[i] = c.CaseID
	}
	return out
}
