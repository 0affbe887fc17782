package backend

import (
	"context"
	"testing"

	"baile/internal/config"
)

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if res.Reader == nil {
		t.Fatalf("memory backend has no reader")
	}

	// The seed ledger is served when no data file exists.
	table, err := res.Reader.ReadTable(context.Background())
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Header) == 0 || len(table.Rows) == 0 {
		t.Fatalf("seed table is empty: %+v", table)
	}
}

func TestCreateBackendInvalidType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateBackend(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "/tmp/x.db"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "bogus"}); err == nil {
		t.Fatalf("expected error for invalid backend type")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
