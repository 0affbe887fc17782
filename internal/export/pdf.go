package export

import (
	"bytes"
	"fmt"
	"time"

	"baile/internal/format"
	"baile/internal/services"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the report as a printable PDF: a metric summary
// followed by the per-party reconciliation table.
func WritePDF(rep services.Report, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Relatório Baile"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Reconciliação — Baile"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Gerado em "+generatedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	m := rep.Metrics
	summary := [][2]string{
		{"Mesas", fmt.Sprintf("%d", m.Rows)},
		{"Mesas Pagas", fmt.Sprintf("%d", m.PaidFullCount)},
		{"Meias Mesas", fmt.Sprintf("%d", m.PaidHalfCount)},
		{"Patrocínios", fmt.Sprintf("%d", m.SponsorshipCount)},
		{"Pendentes", fmt.Sprintf("%d", m.PendingTotal)},
		{"Total Recebido", format.Currency(m.TotalReceived)},
		{"Previsão", format.Currency(m.ExpectedTotal)},
		{"Saldo a Receber", format.Currency(m.OutstandingBalance)},
		{"Percentual Recebido", format.Percent(m.PercentReceived)},
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Resumo"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summary {
		pdf.CellFormat(80, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(row[1]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Responsáveis"), "", 1, "L", false, 0, "")

	widths := []float64{50, 22, 20, 33, 33, 33}
	headers := []string{"Responsável", "Mesas", "Patroc.", "Recebido", "Previsão", "A Receber"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range rep.Parties {
		cells := []string{
			p.Party,
			fmt.Sprintf("%d", p.UnitsDistributed),
			fmt.Sprintf("%d", p.SponsorshipCount),
			format.Currency(p.TotalReceived),
			format.Currency(p.ExpectedAmount),
			format.Currency(p.OutstandingAmount),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
