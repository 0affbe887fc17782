package ledger

import (
	"context"

	"baile/internal/core"
)

// Ports for outbound adapters.
type (
	// TableReader supplies the raw allocation ledger as a tabular
	// snapshot. Implementations fetch from Google Sheets, SQLite or
	// an in-memory seed; the pipeline does not care which.
	TableReader interface {
		ReadTable(ctx context.Context) (core.RawTable, error)
	}
)
