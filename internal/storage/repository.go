package storage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"baile/internal/core"
	ports "baile/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository serves the allocation ledger from a local SQLite
// database. Cells are stored as raw text, exactly as a spreadsheet
// would deliver them; normalization happens in the pipeline.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.TableReader = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadTable implements ledger.TableReader.
func (r *SQLiteRepository) ReadTable(ctx context.Context) (core.RawTable, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ord, nome, cliente, mesa, valor, data_rec
		FROM ledger_rows
		ORDER BY id`)
	if err != nil {
		return core.RawTable{}, fmt.Errorf("select ledger rows: %w", err)
	}
	defer rows.Close()

	table := core.RawTable{
		Header: []string{core.ColSequence, core.ColParty, core.ColClient, core.ColUnit, core.ColAmount, core.ColDate},
	}
	for rows.Next() {
		var ord, nome, cliente, mesa, valor, dataRec string
		if err := rows.Scan(&ord, &nome, &cliente, &mesa, &valor, &dataRec); err != nil {
			return core.RawTable{}, fmt.Errorf("scan ledger row: %w", err)
		}
		table.Rows = append(table.Rows, []string{ord, nome, cliente, mesa, valor, dataRec})
	}
	if err := rows.Err(); err != nil {
		return core.RawTable{}, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return table, nil
}

// ImportCSV replaces the stored ledger with the contents of a CSV dump
// (header row required). Used to seed a local database from a sheet
// export.
func (r *SQLiteRepository) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 1 {
		return 0, fmt.Errorf("csv %s has no header row", path)
	}

	idx, err := columnIndexes(records[0])
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows`); err != nil {
		return 0, fmt.Errorf("clear ledger: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_rows (ord, nome, cliente, mesa, valor, data_rec)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, rec := range records[1:] {
		if _, err := stmt.ExecContext(ctx,
			cell(rec, idx[0]), cell(rec, idx[1]), cell(rec, idx[2]),
			cell(rec, idx[3]), cell(rec, idx[4]), cell(rec, idx[5])); err != nil {
			return 0, fmt.Errorf("insert row: %w", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Ledger imported into SQLite", "rows", count, "source", path)
	return count, nil
}

func columnIndexes(header []string) ([6]int, error) {
	wanted := []string{core.ColSequence, core.ColParty, core.ColClient, core.ColUnit, core.ColAmount, core.ColDate}
	var idx [6]int
	for i, want := range wanted {
		idx[i] = -1
		for j, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return idx, fmt.Errorf("csv is missing column %s", want)
		}
	}
	return idx, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
