package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/example/casedesk/internal/core/cases"
	"github.com/example/casedesk/internal/ports/primary"
	"github.com/example/casedesk/internal/ports/secondary"
)

// Errors returned by CaseServiceImpl.
var (
	ErrInvalidUpdate = errors.New("invalid update")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Corrupt table policies.
const (
	// CorruptQuarantine renames an unreadable table before reseeding.
	CorruptQuarantine = "quarantine"
	// CorruptReplace drops an unreadable table when reseeding.
	CorruptReplace = "replace"
)

// CaseServiceOptions configures CaseServiceImpl.
type CaseServiceOptions struct {
	Logger        *slog.Logger
	SeedSize      int
	Epoch         time.Time
	Rand          *rand.Rand
	CorruptPolicy string
}

// CaseServiceImpl implements the CaseService interface.
type CaseServiceImpl struct {
	caseRepo      secondary.CaseRepository
	reportWriter  secondary.ReportWriter
	logger        *slog.Logger
	seedSize      int
	epoch         time.Time
	corruptPolicy string

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewCaseService creates a new CaseService with injected dependencies.
func NewCaseService(caseRepo secondary.CaseRepository, reportWriter secondary.ReportWriter, opts CaseServiceOptions) *CaseServiceImpl {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	policy := opts.CorruptPolicy
	if policy == "" {
		policy = CorruptQuarantine
	}
	return &CaseServiceImpl{
		caseRepo:      caseRepo,
		reportWriter:  reportWriter,
		logger:        logger.With("component", "case_service"),
		seedSize:      opts.SeedSize,
		epoch:         opts.Epoch,
		corruptPolicy: policy,
		rng:           rng,
	}
}

// Seed generates sample cases and replaces the table with them.
func (s *CaseServiceImpl) Seed(ctx context.Context) ([]*primary.Case, error) {
	s.mu.Lock()
	generated := cases.Generate(cases.GenerateOptions{
		Size:  s.seedSize,
		Epoch: s.epoch,
		Rand:  s.rng,
	})
	s.mu.Unlock()

	if err := s.caseRepo.ReplaceAll(ctx, coreToRecords(generated)); err != nil {
		return nil, fmt.Errorf("failed to save seeded cases: %w", err)
	}

	s.logger.InfoContext(ctx, "seeded cases", "count", len(generated))
	return coreToCases(generated), nil
}

// Load reads the table. Any read failure falls back to Seed; the failure is
// classified and logged, and a corrupt table is kept aside unless the
// replace policy is configured.
func (s *CaseServiceImpl) Load(ctx context.Context) (*primary.LoadResponse, error) {
	records, err := s.caseRepo.ReadAll(ctx)
	if err == nil {
		s.logger.DebugContext(ctx, "loaded cases", "count", len(records))
		return &primary.LoadResponse{
			Cases:  recordsToCases(records),
			Source: primary.SourceStore,
		}, nil
	}

	rf := secondary.AsReadFailure(err)
	resp := &primary.LoadResponse{
		Source:      primary.SourceSeeded,
		FailureKind: string(rf.Kind),
	}

	switch rf.Kind {
	case secondary.ReadMissing:
		s.logger.InfoContext(ctx, "cases table not found, seeding sample data")
	case secondary.ReadCorrupt:
		s.logger.WarnContext(ctx, "cases table unreadable, seeding sample data",
			"error", rf.Err, "policy", s.corruptPolicy)
		if s.corruptPolicy == CorruptQuarantine {
			name, qerr := s.caseRepo.Quarantine(ctx)
			if qerr != nil {
				s.logger.ErrorContext(ctx, "failed to quarantine unreadable table", "error", qerr)
			} else {
				resp.QuarantinedTable = name
				s.logger.WarnContext(ctx, "unreadable table kept aside", "table", name)
			}
		}
	default:
		s.logger.ErrorContext(ctx, "database unreachable, attempting to seed", "error", rf.Err)
	}

	seeded, err := s.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("cases table %s and reseed failed: %w", rf.Kind, err)
	}
	resp.Cases = seeded
	return resp, nil
}

// Filter returns the cases matching the request, in input order.
func (s *CaseServiceImpl) Filter(set []*primary.Case, req primary.FilterRequest) ([]*primary.Case, error) {
	if err := cases.CanFilter(cases.FilterContext{MinRisk: req.MinRisk}).Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	// Filtering works on the port values directly so the result shares
	// elements with the input, as the in-memory view expects.
	index := make(map[*cases.Case]*primary.Case, len(set))
	core := make([]*cases.Case, len(set))
	for i, c := range set {
		cc := cases.Case(*c)
		core[i] = &cc
		index[&cc] = c
	}

	matched := cases.Filter(core, cases.Selector{
		Statuses:  req.Statuses,
		MinRisk:   req.MinRisk,
		CaseTypes: req.CaseTypes,
	})

	out := make([]*primary.Case, len(matched))
	for i, c := range matched {
		out[i] = index[c]
	}
	return out, nil
}

// Update overwrites status and comments on matching cases in place.
func (s *CaseServiceImpl) Update(set []*primary.Case, req primary.UpdateCaseRequest) (int, error) {
	if err := s.checkUpdate(req); err != nil {
		return 0, err
	}

	return cases.Apply(viewCore(set), req.CaseID, req.Status, req.Comments), nil
}

// Save replaces the whole table with set.
func (s *CaseServiceImpl) Save(ctx context.Context, set []*primary.Case) error {
	if err := s.caseRepo.ReplaceAll(ctx, casesToRecords(set)); err != nil {
		return fmt.Errorf("failed to save cases: %w", err)
	}
	s.logger.DebugContext(ctx, "saved cases", "count", len(set))
	return nil
}

// CommitUpdate applies the update to a copy and saves the copy. The input
// set is untouched whether or not the save succeeds.
func (s *CaseServiceImpl) CommitUpdate(ctx context.Context, set []*primary.Case, req primary.UpdateCaseRequest) (*primary.CommitUpdateResponse, error) {
	if err := s.checkUpdate(req); err != nil {
		return nil, err
	}

	next := casesToCore(set)
	n := cases.Apply(next, req.CaseID, req.Status, req.Comments)
	if n == 0 {
		s.logger.InfoContext(ctx, "update matched no case", "case_id", req.CaseID)
		return &primary.CommitUpdateResponse{Cases: coreToCases(next)}, nil
	}

	if err := s.caseRepo.ReplaceAll(ctx, coreToRecords(next)); err != nil {
		return nil, fmt.Errorf("failed to save update to %s: %w", req.CaseID, err)
	}

	s.logger.InfoContext(ctx, "case updated",
		"case_id", req.CaseID, "status", req.Status, "rows", n)
	return &primary.CommitUpdateResponse{
		Cases:   coreToCases(next),
		Updated: n,
	}, nil
}

// Export writes set to destination as a CSV report.
func (s *CaseServiceImpl) Export(ctx context.Context, set []*primary.Case, destination string) error {
	if err := s.reportWriter.WriteReport(ctx, casesToRecords(set), destination); err != nil {
		return fmt.Errorf("failed to export cases: %w", err)
	}
	s.logger.InfoContext(ctx, "report exported", "path", destination, "count", len(set))
	return nil
}

// Summarize computes the data behind the two charts.
func (s *CaseServiceImpl) Summarize(set []*primary.Case) *primary.Summary {
	sum := cases.Summarize(casesToCore(set))

	out := &primary.Summary{
		Total:    sum.Total,
		MeanRisk: sum.MeanRisk,
		RiskBins: make([]primary.RiskBin, len(sum.RiskBins)),
	}
	for i, b := range sum.RiskBins {
		out.RiskBins[i] = primary.RiskBin{
			Lower:  b.Lower,
			Upper:  b.Upper,
			Total:  b.Total,
			ByType: b.ByType,
		}
	}
	for _, share := range sum.Breakdown {
		out.Breakdown = append(out.Breakdown, primary.StatusShare{
			Status:  share.Status,
			Count:   share.Count,
			Percent: share.Percent,
		})
	}
	return out
}

// Options returns the statuses and case types present in set.
func (s *CaseServiceImpl) Options(set []*primary.Case) *primary.FilterOptions {
	statuses, types := cases.Options(casesToCore(set))
	return &primary.FilterOptions{Statuses: statuses, CaseTypes: types}
}

func (s *CaseServiceImpl) checkUpdate(req primary.UpdateCaseRequest) error {
	guard := cases.CanUpdateCase(cases.UpdateCaseContext{
		CaseID: req.CaseID,
		Status: req.Status,
	})
	if err := guard.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUpdate, err)
	}
	return nil
}

// Helper methods

func casesToCore(set []*primary.Case) []*cases.Case {
	out := make([]*cases.Case, len(set))
	for i, c := range set {
		cc := cases.Case(*c)
		out[i] = &cc
	}
	return out
}

// viewCore reinterprets the same cases as core values without copying, so
// core mutations land on the caller's set.
func viewCore(set []*primary.Case) []*cases.Case {
	out := make([]*cases.Case, len(set))
	for i, c := range set {
		out[i] = (*cases.Case)(c)
	}
	return out
}

func coreToCases(set []*cases.Case) []*primary.Case {
	out := make([]*primary.Case, len(set))
	for i, c := range set {
		pc := primary.Case(*c)
		out[i] = &pc
	}
	return out
}

func coreToRecords(set []*cases.Case) []*secondary.CaseRecord {
	out := make([]*secondary.CaseRecord, len(set))
	for i, c := range set {
		rec := secondary.CaseRecord(*c)
		out[i] = &rec
	}
	return out
}

func casesToRecords(set []*primary.Case) []*secondary.CaseRecord {
	out := make([]*secondary.CaseRecord, len(set))
	for i, c := range set {
		rec := secondary.CaseRecord(*c)
		out[i] = &rec
	}
	return out
}

func recordsToCases(records []*secondary.CaseRecord) []*primary.Case {
	out := make([]*primary.Case, len(records))
	for i, r := range records {
		c := primary.Case(*r)
		out[i] = &c
	}
	return out
}

// Ensure CaseServiceImpl implements the interface.
var _ primary.CaseService = (*CaseServiceImpl)(nil)
