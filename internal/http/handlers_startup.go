package http

import (
	"net/http"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
)

// handleStartupView renders the per-startup partial.
func (s *Server) handleStartupView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		_, _ = w.Write([]byte(`<section class="startup"><div class="placeholder">Pick a startup to see its funding history</div></section>`))
		return
	}

	profile := s.getStartup(name)

	type historyRow struct {
		Date      string
		Amount    string
		Round     string
		Investors []string
	}
	data := struct {
		core.StartupProfile
		Total   string
		History []historyRow
	}{
		StartupProfile: profile,
		Total:          profile.TotalFunding.String(),
	}
	for _, inv := range profile.Investments {
		data.History = append(data.History, historyRow{
			Date:      inv.Date.Format(displayDate),
			Amount:    inv.Amount.String(),
			Round:     inv.Round,
			Investors: inv.Investors,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "startup.html", data); err != nil {
		fields := applog.LogFields{applog.FieldStartup: name}.
			WithComponent(applog.ComponentTemplate).
			WithOperation(applog.OpRender)
		s.requestLog.LogError(r.Context(), "Startup template execution failed", err, fields)
		_, _ = w.Write([]byte(`<section class="startup"><div class="placeholder">Error rendering startup view</div></section>`))
	}
}

func (s *Server) handleAPIStartupNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.snapshot.StartupNames())
}

func (s *Server) handleAPIStartup(w http.ResponseWriter, r *http.Request) {
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		writeBadRequest(w, r, "name is required")
		return
	}

	profile := s.getStartup(name)

	writeJSON(w, r, http.StatusOK, struct {
		Name           string           `json:"name"`
		Found          bool             `json:"found"`
		Vertical       string           `json:"vertical,omitempty"`
		SubVertical    string           `json:"subvertical,omitempty"`
		City           string           `json:"city,omitempty"`
		Round          string           `json:"round,omitempty"`
		Investors      []string         `json:"investors"`
		TotalFundingCr float64          `json:"total_funding_cr"`
		Investments    []investmentJSON `json:"investments"`
		Similar        []string         `json:"similar"`
	}{
		Name:           profile.Name,
		Found:          profile.Found,
		Vertical:       profile.Vertical,
		SubVertical:    profile.SubVertical,
		City:           profile.City,
		Round:          profile.Round,
		Investors:      profile.Investors,
		TotalFundingCr: profile.TotalFunding.Crores(),
		Investments:    toInvestmentJSON(profile.Investments),
		Similar:        profile.Similar,
	})
}
