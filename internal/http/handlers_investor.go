package http

import (
	"net/http"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
)

// handleInvestorView renders the per-investor partial.
func (s *Server) handleInvestorView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		_, _ = w.Write([]byte(`<section class="investor"><div class="placeholder">Pick an investor to see their portfolio</div></section>`))
		return
	}

	profile := s.getInvestor(name)

	type historyRow struct {
		Date    string
		Startup string
		Amount  string
		Round   string
	}
	type namedRow struct {
		Name  string
		Total string
		Count int
	}
	type yearRow struct {
		Year  int
		Total string
	}

	toNamedRows := func(entries []core.CategoryTotal) []namedRow {
		rows := make([]namedRow, len(entries))
		for i, e := range entries {
			rows[i] = namedRow{Name: e.Name, Total: e.Total.String(), Count: e.Count}
		}
		return rows
	}

	data := struct {
		Name         string
		Found        bool
		Total        string
		History      []historyRow
		ByStartup    []namedRow
		ByVertical   []namedRow
		ByCity       []namedRow
		ByRound      []namedRow
		YearOverYear []yearRow
		Similar      []string
	}{
		Name:       profile.Name,
		Found:      profile.Found,
		Total:      profile.TotalInvested.String(),
		ByVertical: toNamedRows(profile.ByVertical),
		ByCity:     toNamedRows(profile.ByCity),
		ByRound:    toNamedRows(profile.ByRound),
		Similar:    profile.Similar,
	}
	for _, e := range profile.ByStartup {
		data.ByStartup = append(data.ByStartup, namedRow{Name: e.Name, Total: e.Total.String(), Count: e.Count})
	}
	for _, yt := range profile.YearOverYear {
		data.YearOverYear = append(data.YearOverYear, yearRow{Year: yt.Year, Total: yt.Total.String()})
	}
	for _, inv := range profile.Investments {
		data.History = append(data.History, historyRow{
			Date:    inv.Date.Format(displayDate),
			Startup: inv.Startup,
			Amount:  inv.Amount.String(),
			Round:   inv.Round,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "investor.html", data); err != nil {
		fields := applog.LogFields{applog.FieldInvestor: name}.
			WithComponent(applog.ComponentTemplate).
			WithOperation(applog.OpRender)
		s.requestLog.LogError(r.Context(), "Investor template execution failed", err, fields)
		_, _ = w.Write([]byte(`<section class="investor"><div class="placeholder">Error rendering investor view</div></section>`))
	}
}

func (s *Server) handleAPIInvestorNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.snapshot.InvestorNames())
}

func (s *Server) handleAPIInvestor(w http.ResponseWriter, r *http.Request) {
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		writeBadRequest(w, r, "name is required")
		return
	}

	profile := s.getInvestor(name)

	writeJSON(w, r, http.StatusOK, struct {
		Name            string           `json:"name"`
		Found           bool             `json:"found"`
		TotalInvestedCr float64          `json:"total_invested_cr"`
		Investments     []investmentJSON `json:"investments"`
		ByStartup       []rankedJSON     `json:"by_startup"`
		ByVertical      []categoryJSON   `json:"by_vertical"`
		BySubVertical   []categoryJSON   `json:"by_subvertical"`
		ByCity          []categoryJSON   `json:"by_city"`
		ByRound         []categoryJSON   `json:"by_round"`
		YearOverYear    []yearTotalJSON  `json:"year_over_year"`
		Similar         []string         `json:"similar"`
	}{
		Name:            profile.Name,
		Found:           profile.Found,
		TotalInvestedCr: profile.TotalInvested.Crores(),
		Investments:     toInvestmentJSON(profile.Investments),
		ByStartup:       toRankedJSON(profile.ByStartup),
		ByVertical:      toCategoryJSON(profile.ByVertical),
		BySubVertical:   toCategoryJSON(profile.BySubVertical),
		ByCity:          toCategoryJSON(profile.ByCity),
		ByRound:         toCategoryJSON(profile.ByRound),
		YearOverYear:    toYearTotalJSON(profile.YearOverYear),
		Similar:         profile.Similar,
	})
}
