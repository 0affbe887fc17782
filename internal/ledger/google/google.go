package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"baile/internal/core"
	ports "baile/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads the allocation ledger from a Google Sheets spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	ledgerSheet   string
	readRange     string
}

// Ensure interface conformance
var _ ports.TableReader = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Baile"), GOOGLE_SHEET_RANGE
// (default "A:Z"), and service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheet := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheet == "" {
		sheet = "Baile"
	}
	readRange := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_RANGE"))
	if readRange == "" {
		readRange = "A:Z"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ledgerSheet:   sheet,
		readRange:     readRange,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadTable fetches the configured range and converts it to a raw
// table. The first row of the range is taken as the header.
func (c *Client) ReadTable(ctx context.Context) (core.RawTable, error) {
	if c.svc == nil {
		return core.RawTable{}, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!%s", c.ledgerSheet, c.readRange)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.RawTable{}, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		slog.WarnContext(ctx, "Ledger sheet is empty", "sheet", c.ledgerSheet, "range", rng)
		return core.RawTable{}, nil
	}

	table := core.RawTable{
		Header: toStrings(resp.Values[0]),
		Rows:   make([][]string, 0, len(resp.Values)-1),
	}
	for _, row := range resp.Values[1:] {
		table.Rows = append(table.Rows, toStrings(row))
	}
	slog.DebugContext(ctx, "Fetched ledger table",
		"sheet", c.ledgerSheet,
		"columns", len(table.Header),
		"rows", len(table.Rows))
	return table, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
