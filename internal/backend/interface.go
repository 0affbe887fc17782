// Package backend selects and constructs the ledger table provider the
// pipeline reads from.
package backend

import (
	"context"

	"baile/internal/ledger"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the provider instance and an optional cleanup
// function.
type Result struct {
	Reader  ledger.TableReader
	Cleanup CleanupFunc
}

// Factory creates table providers based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleSheetName     string
	GoogleSheetRange    string

	// Memory backend specific
	DataDirectory string
}

// Type identifies a ledger provider implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
