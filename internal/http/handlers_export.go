package http

import (
	"log/slog"
	"net/http"
	"time"

	"baile/internal/export"
)

// Downloads apply the same query-parameter filter as the dashboard, so
// an exported file always matches what the user was looking at.

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rep, err := s.reports.Report(r.Context(), parseFilter(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export report error", "error", err)
		http.Error(w, "Erro ao gerar o relatório", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename("csv")+`"`)
	if err := export.WriteCSV(w, rep); err != nil {
		slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rep, err := s.reports.Report(r.Context(), parseFilter(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF export report error", "error", err)
		http.Error(w, "Erro ao gerar o relatório", http.StatusBadGateway)
		return
	}

	out, err := export.WritePDF(rep, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF export render error", "error", err)
		http.Error(w, "Erro ao gerar o PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename("pdf")+`"`)
	_, _ = w.Write(out)
}

func exportFilename(ext string) string {
	return "baile_" + time.Now().Format("20060102_150405") + "." + ext
}
