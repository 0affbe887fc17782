// Package services orchestrates report generation: fetching the raw
// ledger, running it through the normalization pipeline and caching the
// resulting snapshot between refreshes.
package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"baile/internal/cache"
	"baile/internal/core"
	"baile/internal/ledger"

	"golang.org/x/sync/singleflight"
)

// snapshotKey is the single cache key: there is one ledger per
// deployment, so the cache is effectively a TTL-guarded slot.
const snapshotKey = "ledger"

type (
	// Snapshot is one normalized ledger state, shared read-only by
	// every request until it expires or is invalidated.
	Snapshot struct {
		Rows      []core.LedgerRow
		FetchedAt time.Time
	}

	// Report is the full result of one report-generation cycle: the
	// filtered row subset plus the metrics derived from exactly that
	// subset. The UI and the exporters consume the same Report, so
	// they can never diverge numerically.
	Report struct {
		Snapshot Snapshot
		Filter   core.Filter
		Rows     []core.LedgerRow
		Metrics  core.GlobalMetrics
		Parties  []core.PartySummary
	}

	// ReportService generates reports from a table provider.
	ReportService struct {
		reader ledger.TableReader
		cache  *cache.LRU[Snapshot]
		group  singleflight.Group
	}
)

func NewReportService(reader ledger.TableReader, ttl time.Duration) *ReportService {
	return &ReportService{
		reader: reader,
		cache:  cache.NewLRU[Snapshot](1, ttl),
	}
}

// Snapshot returns the current normalized ledger, fetching and
// normalizing the raw source when the cached copy is missing or stale.
// Concurrent callers share a single fetch.
//
// Failures to fetch or normalize surface as *core.IngestionError with
// no partial result.
func (s *ReportService) Snapshot(ctx context.Context) (Snapshot, error) {
	if snap, ok := s.cache.Get(snapshotKey); ok {
		return snap, nil
	}

	v, err, _ := s.group.Do(snapshotKey, func() (interface{}, error) {
		// Re-check: another caller may have refilled the slot while
		// we waited on the group.
		if snap, ok := s.cache.Get(snapshotKey); ok {
			return snap, nil
		}
		return s.fetch(ctx)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

// Refresh drops the cached snapshot and fetches a fresh one.
func (s *ReportService) Refresh(ctx context.Context) (Snapshot, error) {
	s.Invalidate()
	return s.Snapshot(ctx)
}

// Invalidate drops the cached snapshot so the next request refetches.
func (s *ReportService) Invalidate() {
	s.cache.Delete(snapshotKey)
}

// Report runs the aggregation stage over the current snapshot,
// restricted to the given filter. The metrics are recomputed from the
// filtered subset alone, so filtered and unfiltered reports use the
// identical formulas.
func (s *ReportService) Report(ctx context.Context, f core.Filter) (Report, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Report{}, err
	}
	rows := f.Apply(snap.Rows)
	metrics, parties := core.ComputeMetrics(rows)
	return Report{
		Snapshot: snap,
		Filter:   f,
		Rows:     rows,
		Metrics:  metrics,
		Parties:  parties,
	}, nil
}

// PartyNames returns the distinct responsible parties in the current
// snapshot, sorted, for the filter dropdown.
func (s *ReportService) PartyNames(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, r := range snap.Rows {
		if _, ok := seen[r.Party]; ok {
			continue
		}
		seen[r.Party] = struct{}{}
		out = append(out, r.Party)
	}
	sort.Strings(out)
	return out, nil
}

func (s *ReportService) fetch(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	table, err := s.reader.ReadTable(ctx)
	if err != nil {
		return Snapshot{}, core.NewIngestionError("fetch ledger table", err)
	}
	rows, err := core.Normalize(table)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Rows: rows, FetchedAt: time.Now()}
	s.cache.Set(snapshotKey, snap)

	slog.InfoContext(ctx, "Ledger snapshot refreshed",
		"rows", len(rows),
		"raw_rows", len(table.Rows),
		"duration_ms", time.Since(start).Milliseconds())
	return snap, nil
}
