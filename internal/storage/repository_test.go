package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"baile/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "baile.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportAndReadTable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	path := writeCSV(t,
		"ORD,NOME,CLIENTE,MESA,VALOR,DATA_REC\n"+
			"1,Ana,Empresa X,1,600,2025-02-10\n"+
			"2,Bruno,-,-,1200,2025-02-12\n")

	count, err := repo.ImportCSV(ctx, path)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d rows, want 2", count)
	}

	table, err := repo.ReadTable(ctx)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	want := []string{core.ColSequence, core.ColParty, core.ColClient, core.ColUnit, core.ColAmount, core.ColDate}
	if len(table.Header) != len(want) {
		t.Fatalf("header = %v", table.Header)
	}
	for i, col := range want {
		if table.Header[i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, table.Header[i], col)
		}
	}
	if len(table.Rows) != 2 || table.Rows[0][1] != "Ana" || table.Rows[1][4] != "1200" {
		t.Fatalf("unexpected rows %v", table.Rows)
	}
}

func TestImportReplacesExistingRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := writeCSV(t,
		"ORD,NOME,CLIENTE,MESA,VALOR,DATA_REC\n"+
			"1,Ana,-,-,600,-\n"+
			"2,Bruno,-,-,300,-\n")
	if _, err := repo.ImportCSV(ctx, first); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := writeCSV(t,
		"ord,nome,cliente,mesa,valor,data_rec\n"+
			"1,Carla,-,-,1000,-\n")
	if _, err := repo.ImportCSV(ctx, second); err != nil {
		t.Fatalf("second import: %v", err)
	}

	table, err := repo.ReadTable(ctx)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0][1] != "Carla" {
		t.Fatalf("import should replace rows, got %v", table.Rows)
	}
}

func TestImportMissingColumn(t *testing.T) {
	repo := newTestRepo(t)

	path := writeCSV(t, "ORD,NOME,CLIENTE\n1,Ana,-\n")
	if _, err := repo.ImportCSV(context.Background(), path); err == nil {
		t.Fatalf("expected error for csv missing required columns")
	}
}
