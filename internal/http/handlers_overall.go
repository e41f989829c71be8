package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/analysis"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Startups  []string
		Investors []string
		Records   int
	}{
		Startups:  s.snapshot.StartupNames(),
		Investors: s.snapshot.InvestorNames(),
		Records:   s.snapshot.Len(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.requestLog.LogError(r.Context(), "Index template execution failed", err,
			applog.NewFields().WithComponent(applog.ComponentTemplate).WithOperation(applog.OpRender))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleOverallView renders the overall analysis partial.
func (s *Server) handleOverallView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	stats := s.snapshot.OverallStats()
	monthly := s.snapshot.MonthlyTotals()

	topSectors, err := s.snapshot.TopByCategory(analysis.BySector, analysis.MetricSum, s.topNDefault)
	if err != nil {
		s.requestLog.LogError(r.Context(), "Top sectors ranking failed", err, nil)
	}
	topStartups, err := s.snapshot.TopByCategory(analysis.ByStartup, analysis.MetricSum, s.topNDefault)
	if err != nil {
		s.requestLog.LogError(r.Context(), "Top startups ranking failed", err, nil)
	}
	topInvestors, err := s.snapshot.TopByCategory(analysis.ByInvestor, analysis.MetricSum, s.topNDefault)
	if err != nil {
		s.requestLog.LogError(r.Context(), "Top investors ranking failed", err, nil)
	}
	topCities, err := s.snapshot.TopByCategory(analysis.ByCity, analysis.MetricSum, s.topNDefault)
	if err != nil {
		s.requestLog.LogError(r.Context(), "Top cities ranking failed", err, nil)
	}

	type monthRow struct {
		Month    string
		Total    string
		Rounds   int
		Startups int
	}
	type rankRow struct {
		Name  string
		Total string
		Count int
		Width int
	}

	toRankRows := func(entries []core.RankedEntry) []rankRow {
		var maxLakhs int64
		for _, e := range entries {
			if e.Total.Lakhs > maxLakhs {
				maxLakhs = e.Total.Lakhs
			}
		}
		rows := make([]rankRow, len(entries))
		for i, e := range entries {
			width := 0
			if maxLakhs > 0 && e.Total.Lakhs > 0 {
				width = int((e.Total.Lakhs*100 + maxLakhs/2) / maxLakhs)
				if width > 0 && width < 2 { // ensure visibility for very small values
					width = 2
				}
				if width > 100 {
					width = 100
				}
			}
			rows[i] = rankRow{Name: e.Name, Total: e.Total.String(), Count: e.Count, Width: width}
		}
		return rows
	}

	type yearRow struct {
		Year  int
		Total string
	}
	type heatRow struct {
		Year   int
		Months []string
	}

	data := struct {
		Total          string
		MaxInfusion    string
		AvgTicket      string
		FundedStartups int
		Rounds         int
		Monthly        []monthRow
		TopSectors     []rankRow
		TopStartups    []rankRow
		TopInvestors   []rankRow
		TopCities      []rankRow
		YearLeaders    []core.YearLeader
		YearOverYear   []yearRow
		Heatmap        []heatRow
	}{
		Total:          stats.TotalInvested.String(),
		MaxInfusion:    stats.MaxInfusion.String(),
		AvgTicket:      formatCrores(stats.AvgTicketSize),
		FundedStartups: stats.FundedStartups,
		Rounds:         stats.Rounds,
		TopSectors:     toRankRows(topSectors),
		TopStartups:    toRankRows(topStartups),
		TopInvestors:   toRankRows(topInvestors),
		TopCities:      toRankRows(topCities),
		YearLeaders:    s.snapshot.MostFundedStartupByYear(),
	}
	for _, mt := range monthly {
		data.Monthly = append(data.Monthly, monthRow{
			Month:    mt.Key.String(),
			Total:    mt.Total.String(),
			Rounds:   mt.Rounds,
			Startups: mt.Startups,
		})
	}
	for _, yt := range s.snapshot.YearOverYear() {
		data.YearOverYear = append(data.YearOverYear, yearRow{Year: yt.Year, Total: yt.Total.String()})
	}
	for _, hr := range s.snapshot.FundingHeatmap() {
		row := heatRow{Year: hr.Year}
		for _, amount := range hr.Months {
			row.Months = append(row.Months, amount.String())
		}
		data.Heatmap = append(data.Heatmap, row)
	}

	if err := s.templates.ExecuteTemplate(w, "overall.html", data); err != nil {
		s.requestLog.LogError(r.Context(), "Overall template execution failed", err,
			applog.NewFields().WithComponent(applog.ComponentTemplate).WithOperation(applog.OpRender))
		_, _ = w.Write([]byte(`<section class="overall"><div class="placeholder">Error rendering overall analysis</div></section>`))
	}
}

func (s *Server) handleAPIOverall(w http.ResponseWriter, r *http.Request) {
	stats := s.snapshot.OverallStats()

	writeJSON(w, r, http.StatusOK, struct {
		TotalInvestedCr float64 `json:"total_invested_cr"`
		MaxInfusionCr   float64 `json:"max_infusion_cr"`
		AvgTicketSizeCr float64 `json:"avg_ticket_size_cr"`
		FundedStartups  int     `json:"funded_startups"`
		Rounds          int     `json:"rounds"`
	}{
		TotalInvestedCr: stats.TotalInvested.Crores(),
		MaxInfusionCr:   stats.MaxInfusion.Crores(),
		AvgTicketSizeCr: stats.AvgTicketSize,
		FundedStartups:  stats.FundedStartups,
		Rounds:          stats.Rounds,
	})
}

// monthlyMetrics maps the metric query parameter of /api/monthly to the
// column it selects from each bucket.
var monthlyMetrics = map[string]func(core.MonthlyTotal) float64{
	"sum":   func(mt core.MonthlyTotal) float64 { return mt.Total.Crores() },
	"max":   func(mt core.MonthlyTotal) float64 { return mt.Max.Crores() },
	"mean":  func(mt core.MonthlyTotal) float64 { return mt.Mean },
	"count": func(mt core.MonthlyTotal) float64 { return float64(mt.Rounds) },
}

func (s *Server) handleAPIMonthly(w http.ResponseWriter, r *http.Request) {
	monthly := s.snapshot.MonthlyTotals()

	// With a metric the response is a single series; without one it carries
	// every column per bucket.
	if metric := strings.TrimSpace(r.URL.Query().Get("metric")); metric != "" {
		pick, ok := monthlyMetrics[metric]
		if !ok {
			writeBadRequest(w, r, "unknown metric: "+template.HTMLEscapeString(metric))
			return
		}

		type pointJSON struct {
			Month string  `json:"month"`
			Value float64 `json:"value"`
		}
		out := make([]pointJSON, len(monthly))
		for i, mt := range monthly {
			out[i] = pointJSON{Month: mt.Key.String(), Value: pick(mt)}
		}
		writeJSON(w, r, http.StatusOK, out)
		return
	}

	type monthJSON struct {
		Month    string  `json:"month"`
		TotalCr  float64 `json:"total_cr"`
		MaxCr    float64 `json:"max_cr"`
		MeanCr   float64 `json:"mean_cr"`
		Rounds   int     `json:"rounds"`
		Startups int     `json:"startups"`
	}

	out := make([]monthJSON, len(monthly))
	for i, mt := range monthly {
		out[i] = monthJSON{
			Month:    mt.Key.String(),
			TotalCr:  mt.Total.Crores(),
			MaxCr:    mt.Max.Crores(),
			MeanCr:   mt.Mean,
			Rounds:   mt.Rounds,
			Startups: mt.Startups,
		}
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleAPITop(w http.ResponseWriter, r *http.Request) {
	by := analysis.Category(strings.TrimSpace(r.URL.Query().Get("by")))
	if by == "" {
		by = analysis.ByStartup
	}
	if !analysis.ValidCategory(by) {
		writeBadRequest(w, r, "unknown category: "+template.HTMLEscapeString(string(by)))
		return
	}

	metric := analysis.Metric(strings.TrimSpace(r.URL.Query().Get("metric")))
	if metric == "" {
		metric = analysis.MetricSum
	}
	if !analysis.ValidMetric(metric) {
		writeBadRequest(w, r, "unknown metric: "+template.HTMLEscapeString(string(metric)))
		return
	}

	n, ok := queryInt(r, "n", s.topNDefault)
	if !ok {
		writeBadRequest(w, r, "n must be an integer")
		return
	}

	ranked, err := s.snapshot.TopByCategory(by, metric, n)
	if err != nil {
		if errors.Is(err, core.ErrInvalidTopN) {
			writeBadRequest(w, r, "n must be a positive integer")
			return
		}
		writeBadRequest(w, r, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, toRankedJSON(ranked))
}
