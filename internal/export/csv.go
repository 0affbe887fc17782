// Package export serializes reports for download. Exporters consume
// the same Report the dashboard renders, so exported numbers can never
// diverge from the on-screen ones.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"baile/internal/format"
	"baile/internal/services"
)

// utf8BOM makes spreadsheet applications detect the encoding; the
// original report consumers open these files in Excel.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the filtered ledger rows followed by a summary block.
func WriteCSV(w io.Writer, rep services.Report) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ORD", "NOME", "CLIENTE", "MESA", "VALOR", "CLASSE", "DATA"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rep.Rows {
		rec := []string{
			fmt.Sprintf("%d", r.Sequence),
			r.Party,
			r.Client,
			format.Unit(r.Unit),
			format.Currency(r.Effective),
			string(r.Category),
			r.ReceivedDate,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	// Blank line, then the summary block the dashboard shows.
	if err := cw.Write([]string{""}); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}
	m := rep.Metrics
	summary := [][]string{
		{"Métrica", "Valor"},
		{"Mesas", fmt.Sprintf("%d", m.Rows)},
		{"Mesas Pagas", fmt.Sprintf("%d", m.PaidFullCount)},
		{"Meias Mesas", fmt.Sprintf("%d", m.PaidHalfCount)},
		{"Patrocínios", fmt.Sprintf("%d", m.SponsorshipCount)},
		{"Pendentes", fmt.Sprintf("%d", m.PendingTotal)},
		{"Total Recebido", format.Currency(m.TotalReceived)},
		{"Previsão", format.Currency(m.ExpectedTotal)},
		{"Saldo a Receber", format.Currency(m.OutstandingBalance)},
		{"Percentual", format.Percent(m.PercentReceived)},
	}
	for _, rec := range summary {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
