package core

import (
	"errors"
	"reflect"
	"testing"
)

func ledgerTable() RawTable {
	return RawTable{
		Header: []string{" ORD ", "NOME", "Cliente", "MESA", "VALOR", "DATA_REC", "OBS", ""},
		Rows: [][]string{
			{"1", "Ana", "Empresa X", "1", "600", "2025-03-01", "ok", ""},
			{"2", "Ana", "", "2", "1200", "2025-03-02", "", ""},
			{"3", "Bruno", "Empresa Y", "", "300", "", "", ""},
			{"", "", "", "", "", "", "", ""},       // fully empty row
			{"", "Carla", "Empresa Z", "9", "600"}, // no sequence: dropped
			{"4", "Carla", "Empresa Z", "abc", "oops", "-"},
		},
	}
}

func TestNormalize(t *testing.T) {
	rows, err := Normalize(ledgerTable())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	r := rows[0]
	if r.Sequence != 1 || r.Party != "Ana" || r.Client != "Empresa X" || r.Unit != 1 {
		t.Fatalf("unexpected first row: %+v", r)
	}
	if r.Effective.Cents != 60000 || r.Category != CategoryPaidFull {
		t.Fatalf("first row amount/category: %+v", r)
	}
	if !r.HasPayment() {
		t.Fatalf("first row should have a recorded payment")
	}

	// Missing client falls back to the sentinel.
	if rows[1].Client != NoParty {
		t.Fatalf("expected client sentinel, got %q", rows[1].Client)
	}
	if rows[1].Category != CategorySponsorship {
		t.Fatalf("1200 should classify as sponsorship, got %s", rows[1].Category)
	}

	// Missing unit and date fall back to their sentinels.
	if rows[2].Unit != UnassignedUnit || rows[2].ReceivedDate != NoDate {
		t.Fatalf("sentinel fill failed: %+v", rows[2])
	}

	// Unparseable unit and amount become sentinels/null, not errors.
	last := rows[3]
	if last.Unit != UnassignedUnit {
		t.Fatalf("unparseable unit should be %d, got %d", UnassignedUnit, last.Unit)
	}
	if last.HasPayment() {
		t.Fatalf("unparseable amount must stay null")
	}
	if last.Effective.Cents != 0 || last.Category != CategoryPending {
		t.Fatalf("null amount must coalesce to zero and classify pending: %+v", last)
	}
}

func TestNormalizeMissingColumn(t *testing.T) {
	table := RawTable{
		Header: []string{"ORD", "NOME", "CLIENTE", "MESA", "DATA_REC"},
		Rows:   [][]string{{"1", "Ana", "X", "1", "-"}},
	}
	_, err := Normalize(table)
	if err == nil {
		t.Fatalf("expected error for missing VALOR column")
	}
	var ie *IngestionError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *IngestionError, got %T", err)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	table := ledgerTable()
	first, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	second, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization is not idempotent")
	}
}

func TestNormalizeHeaderCaseInsensitive(t *testing.T) {
	table := RawTable{
		Header: []string{"ord", "nome", "cliente", "mesa", "valor", "data_rec"},
		Rows:   [][]string{{"1", "Ana", "X", "1", "600", "-"}},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != CategoryPaidFull {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestNormalizeEmptyColumnWithoutHeaderIsDropped(t *testing.T) {
	table := RawTable{
		Header: []string{"", "ORD", "NOME", "CLIENTE", "MESA", "VALOR", "DATA_REC"},
		Rows: [][]string{
			{"", "1", "Ana", "X", "1", "600", "-"},
		},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(rows) != 1 || rows[0].Sequence != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestIngestionErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewIngestionError("fetch ledger", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
	if err.Error() == "" {
		t.Fatalf("expected non-empty message")
	}
}
