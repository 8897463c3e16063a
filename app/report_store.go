package app

import (
	"context"
	"sort"
	"sync"

	"tablens/domain/core"
	"tablens/internal/errors"
)

// ReportStore persists built reports.
type ReportStore interface {
	Save(ctx context.Context, report *Report) error
	Get(ctx context.Context, id core.ReportID) (*Report, error)
	ListByFingerprint(ctx context.Context, fingerprint core.Hash, limit int) ([]ReportSummary, error)
}

// ReportSummary identifies a stored report without its body.
type ReportSummary struct {
	ID          core.ReportID  `json:"id"`
	Title       string         `json:"title"`
	Fingerprint core.Hash      `json:"fingerprint"`
	GeneratedAt core.Timestamp `json:"generated_at"`
}

// Summary returns the report's identifying fields.
func (r *Report) Summary() ReportSummary {
	return ReportSummary{ID: r.ID, Title: r.Title, Fingerprint: r.Fingerprint, GeneratedAt: r.GeneratedAt}
}

// DefaultMemoryReports caps a MemoryReportStore.
const DefaultMemoryReports = 1000

// MemoryReportStore keeps the most recent reports in process memory; used
// when no database is configured. Once full, the oldest saved report is
// evicted.
type MemoryReportStore struct {
	mu      sync.RWMutex
	reports map[core.ReportID]*Report
	order   []core.ReportID
	limit   int
}

func NewMemoryReportStore() *MemoryReportStore {
	return NewMemoryReportStoreWithLimit(DefaultMemoryReports)
}

// NewMemoryReportStoreWithLimit keeps at most limit reports; a non-positive
// limit means DefaultMemoryReports.
func NewMemoryReportStoreWithLimit(limit int) *MemoryReportStore {
	if limit <= 0 {
		limit = DefaultMemoryReports
	}
	return &MemoryReportStore{reports: make(map[core.ReportID]*Report), limit: limit}
}

func (s *MemoryReportStore) Save(_ context.Context, report *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; !exists {
		s.order = append(s.order, report.ID)
	}
	s.reports[report.ID] = report
	for len(s.order) > s.limit {
		delete(s.reports, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

func (s *MemoryReportStore) Get(_ context.Context, id core.ReportID) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, errors.NotFound("report " + id.String())
	}
	return report, nil
}

func (s *MemoryReportStore) ListByFingerprint(_ context.Context, fingerprint core.Hash, limit int) ([]ReportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []ReportSummary{}
	for _, r := range s.reports {
		if r.Fingerprint.Equals(fingerprint) {
			out = append(out, r.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].GeneratedAt.Time(), out[j].GeneratedAt.Time()
		if ti.Equal(tj) {
			return out[i].ID > out[j].ID
		}
		return ti.After(tj)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
