package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"baile/internal/core"
	"baile/internal/format"
)

type (
	metricCard struct {
		Label string
		Value string
	}

	categoryOption struct {
		Name     string
		Selected bool
	}

	partyOption struct {
		Name     string
		Selected bool
	}

	ledgerRowView struct {
		Sequence string
		Party    string
		Client   string
		Unit     string
		Amount   string
		Category string
		Date     string
		Pending  bool
	}

	sponsorRowView struct {
		Party  string
		Client string
		Amount string
		Extra  string
	}

	partyRowView struct {
		Party       string
		Units       string
		Received    string
		Sponsors    string
		Expected    string
		Outstanding string
		InDebt      bool
	}
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	f := parseFilter(r)
	rep, err := s.reports.Report(r.Context(), f)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation error", "error", err)
		http.Error(w, "Erro ao carregar o razão de mesas", http.StatusBadGateway)
		return
	}
	parties, err := s.reports.PartyNames(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Party list error", "error", err)
	}

	m := rep.Metrics
	data := struct {
		FetchedAt        string
		Cards            []metricCard
		Categories       []categoryOption
		Parties          []partyOption
		Min              string
		Max              string
		Query            string
		Filtered         bool
		MissingSequences string
		Rows             []ledgerRowView
		PartyRows        []partyRowView
		SponsorRows      []sponsorRowView
		SponsorExtra     string
		AuthEnabled      bool
	}{
		FetchedAt:   rep.Snapshot.FetchedAt.Format("02/01/2006 15:04"),
		Query:       r.URL.RawQuery,
		Filtered:    len(f.Categories) > 0 || f.Party != "" || f.Min != nil || f.Max != nil,
		AuthEnabled: s.auth != nil && s.auth.Enabled(),
	}

	data.Cards = []metricCard{
		{"Mesas", format.Count(m.Rows)},
		{"Mesas Pagas", format.Count(m.PaidFullCount)},
		{"Meias Mesas", format.Count(m.PaidHalfCount)},
		{"Patrocínios", format.Count(m.SponsorshipCount)},
		{"Pendentes", format.Count(m.PendingTotal)},
		{"Total Recebido", format.Currency(m.TotalReceived)},
		{"Previsão", format.Currency(m.ExpectedTotal)},
		{"Saldo a Receber", format.Currency(m.OutstandingBalance)},
		{"Percentual Recebido", format.Percent(m.PercentReceived)},
	}

	selected := make(map[core.Category]bool)
	for _, c := range f.Categories {
		selected[c] = true
	}
	for _, c := range core.Categories() {
		data.Categories = append(data.Categories, categoryOption{Name: string(c), Selected: selected[c]})
	}
	for _, p := range parties {
		data.Parties = append(data.Parties, partyOption{Name: p, Selected: p == f.Party})
	}
	if f.Min != nil {
		data.Min = strconv.FormatFloat(f.Min.Reais(), 'f', 2, 64)
	}
	if f.Max != nil {
		data.Max = strconv.FormatFloat(f.Max.Reais(), 'f', 2, 64)
	}

	if len(m.MissingSequences) > 0 {
		parts := make([]string, len(m.MissingSequences))
		for i, seq := range m.MissingSequences {
			parts[i] = strconv.Itoa(seq)
		}
		data.MissingSequences = strings.Join(parts, ", ")
	}

	for _, row := range rep.Rows {
		data.Rows = append(data.Rows, ledgerRowView{
			Sequence: strconv.Itoa(row.Sequence),
			Party:    row.Party,
			Client:   row.Client,
			Unit:     format.Unit(row.Unit),
			Amount:   format.Currency(row.Effective),
			Category: string(row.Category),
			Date:     row.ReceivedDate,
			Pending:  row.Category == core.CategoryPending,
		})
	}
	for _, row := range rep.Rows {
		if row.Category != core.CategorySponsorship {
			continue
		}
		extra := row.Effective.Sub(core.Money{Cents: core.SponsorshipFloor})
		data.SponsorRows = append(data.SponsorRows, sponsorRowView{
			Party:  row.Party,
			Client: row.Client,
			Amount: format.Currency(row.Effective),
			Extra:  format.Currency(extra),
		})
	}
	if m.SponsorshipCount > 0 {
		data.SponsorExtra = format.Currency(m.SponsorshipExtraTotal)
	}

	for _, p := range rep.Parties {
		data.PartyRows = append(data.PartyRows, partyRowView{
			Party:       p.Party,
			Units:       format.Count(p.UnitsDistributed),
			Received:    format.Currency(p.TotalReceived),
			Sponsors:    format.Count(p.SponsorshipCount),
			Expected:    format.Currency(p.ExpectedAmount),
			Outstanding: format.Currency(p.OutstandingAmount),
			InDebt:      p.OutstandingAmount.Cents > 0,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleRefresh drops the cached snapshot and refetches before sending
// the browser back to the dashboard.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.reports.Refresh(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Manual refresh failed", "error", err)
		http.Error(w, "Erro ao atualizar o razão de mesas", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
