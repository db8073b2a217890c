package app

import (
	"context"
	"errors"
	"sync"

	"github.com/example/casedesk/internal/ports/primary"
)

// ErrCaseNotFound is returned when a case ID matches nothing in the session.
var ErrCaseNotFound = errors.New("case not found")

// Session holds the in-memory case set for one presentation lifetime.
// It is built once, loaded once, and handed to the CLI or HTTP layer in
// place of process-wide state. Access is serialised; the store itself has
// no locking, so across processes the last save wins.
type Session struct {
	svc primary.CaseService

	mu     sync.Mutex
	cases  []*primary.Case
	loaded *primary.LoadResponse
}

// NewSession creates a session around svc. Call Open before use.
func NewSession(svc primary.CaseService) *Session {
	return &Session{svc: svc}
}

// Open loads the table (seeding it if unreadable) into the session.
func (s *Session) Open(ctx context.Context) (*primary.LoadResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Reload discards the in-memory set and reads the table again.
func (s *Session) Reload(ctx context.Context) (*primary.LoadResponse, error) {
	return s.Open(ctx)
}

// Reseed regenerates sample data and replaces the in-memory set.
func (s *Session) Reseed(ctx context.Context) ([]*primary.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded, err := s.svc.Seed(ctx)
	if err != nil {
		return nil, err
	}
	s.cases = seeded
	s.loaded = &primary.LoadResponse{Cases: seeded, Source: primary.SourceSeeded}
	return seeded, nil
}

// Cases returns a snapshot of every case in the session.
func (s *Session) Cases() []*primary.Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cases)
}

// Get returns a copy of the first case with the given ID.
func (s *Session) Get(caseID string) (*primary.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cases {
		if c.CaseID == caseID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCaseNotFound
}

// Options returns the statuses and case types present in the session.
func (s *Session) Options() *primary.FilterOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svc.Options(s.cases)
}

// Filter returns copies of the cases matching req.
func (s *Session) Filter(req primary.FilterRequest) ([]*primary.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched, err := s.svc.Filter(s.cases, req)
	if err != nil {
		return nil, err
	}
	return snapshot(matched), nil
}

// Update commits a status/comments change. The session's set is replaced
// only after the table has been rewritten, so a failed save leaves both
// unchanged. ErrCaseNotFound is returned when no case matched.
func (s *Session) Update(ctx context.Context, req primary.UpdateCaseRequest) (*primary.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.svc.CommitUpdate(ctx, s.cases, req)
	if err != nil {
		return nil, err
	}
	if resp.Updated == 0 {
		return nil, ErrCaseNotFound
	}
	s.cases = resp.Cases

	for _, c := range s.cases {
		if c.CaseID == req.CaseID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCaseNotFound
}

// Export writes the cases matching req to destination and returns how many
// rows were written.
func (s *Session) Export(ctx context.Context, req primary.FilterRequest, destination string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched, err := s.svc.Filter(s.cases, req)
	if err != nil {
		return 0, err
	}
	if err := s.svc.Export(ctx, matched, destination); err != nil {
		return 0, err
	}
	return len(matched), nil
}

// Summary computes the chart data for the cases matching req.
func (s *Session) Summary(req primary.FilterRequest) (*primary.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched, err := s.svc.Filter(s.cases, req)
	if err != nil {
		return nil, err
	}
	return s.svc.Summarize(matched), nil
}

// DefaultFilter returns the dashboard's initial selectors: every status and
// case type present, and the given minimum risk.
func (s *Session) DefaultFilter(minRisk int) primary.FilterRequest {
	opts := s.Options()
	return primary.FilterRequest{
		Statuses:  opts.Statuses,
		MinRisk:   minRisk,
		CaseTypes: opts.CaseTypes,
	}
}

// LastLoad reports how the session's data was obtained.
func (s *Session) LastLoad() *primary.LoadResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Session) loadLocked(ctx context.Context) (*primary.LoadResponse, error) {
	resp, err := s.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cases = resp.Cases
	s.loaded = resp
	return resp, nil
}

func snapshot(set []*primary.Case) []*primary.Case {
	out := make([]*primary.Case, len(set))
	for i, c := range set {
		cp := *c
		out[i] = &cp
	}
	return out
}
