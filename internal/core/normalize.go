package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical ledger column names, matched case-insensitively after
// trimming. These are the six columns the pipeline requires; any other
// column in the source table is ignored.
const (
	ColSequence = "ORD"
	ColParty    = "NOME"
	ColClient   = "CLIENTE"
	ColUnit     = "MESA"
	ColAmount   = "VALOR"
	ColDate     = "DATA_REC"
)

// RawTable is a tabular snapshot as delivered by a table provider:
// a header row plus data rows of string cells. Rows may be ragged;
// missing trailing cells read as empty.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// IngestionError signals that the raw source was unreachable,
// malformed, or missing a required column. It is all-or-nothing: no
// partial normalized set accompanies it.
type IngestionError struct {
	Reason string
	Cause  error
}

func (e *IngestionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ledger ingestion: %s: %v", e.Reason, e.Cause)
	}
	return "ledger ingestion: " + e.Reason
}

func (e *IngestionError) Unwrap() error {
	return e.Cause
}

// NewIngestionError wraps a provider failure (fetch, parse) into the
// pipeline's single error kind.
func NewIngestionError(reason string, cause error) *IngestionError {
	return &IngestionError{Reason: reason, Cause: cause}
}

// Normalize converts a raw table into the classified ledger row set.
//
// It trims column names, drops fully empty rows and columns, requires
// the six canonical columns, coerces numeric fields (unparseable
// values become nulls, never errors), drops rows without a sequence
// number and fills the remaining nulls with sentinels. Every returned
// row carries an effective amount and a category.
//
// The only failure mode is a missing required column, reported as
// *IngestionError. Normalize is pure: the same table always yields the
// same row set.
func Normalize(t RawTable) ([]LedgerRow, error) {
	header, rows := dropEmpty(t)

	idx, err := requiredColumns(header)
	if err != nil {
		return nil, err
	}

	out := make([]LedgerRow, 0, len(rows))
	for _, cells := range rows {
		seq, ok := parseSequence(cellAt(cells, idx[ColSequence]))
		if !ok {
			// Rows without a sequence number are noise, not
			// domain records.
			continue
		}

		row := LedgerRow{
			Sequence:     seq,
			Party:        fillSentinel(cellAt(cells, idx[ColParty]), NoParty),
			Client:       fillSentinel(cellAt(cells, idx[ColClient]), NoParty),
			Unit:         parseUnit(cellAt(cells, idx[ColUnit])),
			ReceivedDate: fillSentinel(cellAt(cells, idx[ColDate]), NoDate),
		}
		if cents, ok := ParseAmountCents(cellAt(cells, idx[ColAmount])); ok {
			row.RawAmount = &Money{Cents: cents}
			row.Effective = Money{Cents: cents}
		}
		row.Category = Classify(row.Effective)
		out = append(out, row)
	}
	return out, nil
}

// dropEmpty removes rows and columns whose cells are all blank and
// trims whitespace from column names.
func dropEmpty(t RawTable) ([]string, [][]string) {
	width := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > width {
			width = len(r)
		}
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !rowEmpty(r) {
			rows = append(rows, r)
		}
	}

	keep := make([]int, 0, width)
	header := make([]string, 0, width)
	for col := 0; col < width; col++ {
		name := ""
		if col < len(t.Header) {
			name = strings.TrimSpace(t.Header[col])
		}
		if name == "" && colEmpty(rows, col) {
			continue
		}
		keep = append(keep, col)
		header = append(header, name)
	}

	// Reproject rows onto the kept columns.
	proj := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(keep))
		for j, col := range keep {
			if col < len(r) {
				cells[j] = r[col]
			}
		}
		proj[i] = cells
	}
	return header, proj
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func colEmpty(rows [][]string, col int) bool {
	for _, r := range rows {
		if col < len(r) && strings.TrimSpace(r[col]) != "" {
			return false
		}
	}
	return true
}

// requiredColumns maps each canonical column name to its index in the
// header, or fails with an IngestionError naming every missing column.
func requiredColumns(header []string) (map[string]int, error) {
	required := []string{ColSequence, ColParty, ColClient, ColUnit, ColAmount, ColDate}
	idx := make(map[string]int, len(required))
	for _, want := range required {
		found := -1
		for i, name := range header {
			if strings.EqualFold(name, want) {
				found = i
				break
			}
		}
		if found >= 0 {
			idx[want] = found
		}
	}
	if len(idx) < len(required) {
		var missing []string
		for _, want := range required {
			if _, ok := idx[want]; !ok {
				missing = append(missing, want)
			}
		}
		return nil, NewIngestionError("missing required columns: "+strings.Join(missing, ", "), nil)
	}
	return idx, nil
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func fillSentinel(s, sentinel string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinel
	}
	return s
}

// parseSequence parses an integer sequence number. Spreadsheet numeric
// cells may arrive as "12" or "12.0"; both are accepted.
func parseSequence(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

func parseUnit(s string) int {
	if n, ok := parseSequence(s); ok {
		return n
	}
	return UnassignedUnit
}
