package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"baile/internal/core"
)

type fakeReader struct {
	calls atomic.Int64
	table core.RawTable
	err   error
}

func (f *fakeReader) ReadTable(ctx context.Context) (core.RawTable, error) {
	f.calls.Add(1)
	if f.err != nil {
		return core.RawTable{}, f.err
	}
	return f.table, nil
}

func testTable() core.RawTable {
	return core.RawTable{
		Header: []string{"ORD", "NOME", "CLIENTE", "MESA", "VALOR", "DATA_REC"},
		Rows: [][]string{
			{"1", "Ana", "-", "1", "600", "-"},
			{"2", "Ana", "-", "2", "1200", "-"},
			{"3", "Bruno", "-", "3", "300", "-"},
		},
	}
}

func TestSnapshotIsCached(t *testing.T) {
	r := &fakeReader{table: testTable()}
	svc := NewReportService(r, time.Minute)

	first, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(first.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(first.Rows))
	}

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := r.calls.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}

	svc.Invalidate()
	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := r.calls.Load(); got != 2 {
		t.Fatalf("expected refetch after invalidation, got %d fetches", got)
	}
}

func TestSnapshotFetchErrorIsIngestionError(t *testing.T) {
	cause := errors.New("network down")
	svc := NewReportService(&fakeReader{err: cause}, time.Minute)

	_, err := svc.Snapshot(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	var ie *core.IngestionError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *core.IngestionError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause must be wrapped")
	}
}

func TestReportAppliesFilter(t *testing.T) {
	svc := NewReportService(&fakeReader{table: testTable()}, time.Minute)

	rep, err := svc.Report(context.Background(), core.Filter{Party: "Ana"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("expected 2 filtered rows, got %d", len(rep.Rows))
	}
	if rep.Metrics.Rows != 2 {
		t.Fatalf("metrics must come from the filtered subset, got %d rows", rep.Metrics.Rows)
	}
	if len(rep.Parties) != 1 || rep.Parties[0].Party != "Ana" {
		t.Fatalf("unexpected party summaries: %+v", rep.Parties)
	}

	// Unknown party yields an empty but well-defined report.
	rep, err = svc.Report(context.Background(), core.Filter{Party: "nobody"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Metrics.Rows != 0 || rep.Metrics.PercentReceived != 0 {
		t.Fatalf("empty subset metrics: %+v", rep.Metrics)
	}
}

func TestPartyNames(t *testing.T) {
	svc := NewReportService(&fakeReader{table: testTable()}, time.Minute)
	names, err := svc.PartyNames(context.Background())
	if err != nil {
		t.Fatalf("PartyNames: %v", err)
	}
	if len(names) != 2 || names[0] != "Ana" || names[1] != "Bruno" {
		t.Fatalf("unexpected names: %v", names)
	}
}
