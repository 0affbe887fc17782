package memory

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"

	"baile/internal/core"
)

// Store holds a raw ledger table in memory. It is the default backend
// for local development and tests.
type Store struct {
	mu    sync.Mutex
	table core.RawTable
}

func New(table core.RawTable) *Store {
	return &Store{table: table}
}

// NewFromFiles loads data/ledger.csv from the given base directory.
// When the file is missing a small seed ledger is used instead so the
// dashboard renders something out of the box.
func NewFromFiles(base string) *Store {
	table, err := readCSV(filepath.Join(base, "ledger.csv"))
	if err != nil {
		table = seedTable()
	}
	return New(table)
}

// ReadTable returns a copy of the stored table.
func (s *Store) ReadTable(_ context.Context) (core.RawTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := core.RawTable{
		Header: append([]string(nil), s.table.Header...),
		Rows:   make([][]string, len(s.table.Rows)),
	}
	for i, r := range s.table.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out, nil
}

// Replace swaps the stored table, used by tests to simulate refreshes.
func (s *Store) Replace(table core.RawTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

func readCSV(path string) (core.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.RawTable{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return core.RawTable{}, err
	}
	if len(records) == 0 {
		return core.RawTable{}, nil
	}
	return core.RawTable{Header: records[0], Rows: records[1:]}, nil
}

func seedTable() core.RawTable {
	return core.RawTable{
		Header: []string{"ORD", "NOME", "CLIENTE", "MESA", "VALOR", "DATA_REC"},
		Rows: [][]string{
			{"1", "Ana", "Empresa X", "1", "600", "2025-02-10"},
			{"2", "Ana", "Empresa Y", "2", "1200", "2025-02-12"},
			{"3", "Bruno", "-", "3", "300", "2025-02-15"},
			{"4", "Bruno", "-", "", "", ""},
			{"5", "Carla", "Empresa Z", "5", "600", "2025-02-20"},
		},
	}
}
