package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// writeJSON encodes v as the response body. Encode failures can only be
// half-written at this point, so they are logged and dropped.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "JSON encode error", "error", err, "url", r.URL.Path)
	}
}

// errorResponse is the JSON body for 4xx answers.
type errorResponse struct {
	Error string `json:"error"`
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: msg})
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}

// queryInt reads an integer query parameter, falling back to def when absent.
// The second return is false when the value is present but not an integer.
func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// displayDate is the date format shown in tables, matching the source data.
const displayDate = "02/01/2006"

// formatCrores renders a crore value for display, e.g. "₹39.66 Cr".
func formatCrores(cr float64) string {
	return "₹" + strconv.FormatFloat(cr, 'f', 2, 64) + " Cr"
}

// JSON shapes for the API. Amounts are rendered in crores so the numbers read
// the way the dashboard shows them.

type investmentJSON struct {
	Date        string   `json:"date"`
	Startup     string   `json:"startup"`
	Vertical    string   `json:"vertical,omitempty"`
	SubVertical string   `json:"subvertical,omitempty"`
	City        string   `json:"city,omitempty"`
	Investors   []string `json:"investors"`
	Round       string   `json:"round,omitempty"`
	AmountCr    float64  `json:"amount_cr"`
}

func toInvestmentJSON(records []core.Investment) []investmentJSON {
	out := make([]investmentJSON, len(records))
	for i, inv := range records {
		out[i] = investmentJSON{
			Date:        inv.Date.Format(displayDate),
			Startup:     inv.Startup,
			Vertical:    inv.Vertical,
			SubVertical: inv.SubVertical,
			City:        inv.City,
			Investors:   inv.Investors,
			Round:       inv.Round,
			AmountCr:    inv.Amount.Crores(),
		}
	}
	return out
}

type rankedJSON struct {
	Name    string  `json:"name"`
	TotalCr float64 `json:"total_cr"`
	Count   int     `json:"count"`
}

func toRankedJSON(entries []core.RankedEntry) []rankedJSON {
	out := make([]rankedJSON, len(entries))
	for i, e := range entries {
		out[i] = rankedJSON{Name: e.Name, TotalCr: e.Total.Crores(), Count: e.Count}
	}
	return out
}

type categoryJSON struct {
	Name    string  `json:"name"`
	TotalCr float64 `json:"total_cr"`
	Count   int     `json:"count"`
}

func toCategoryJSON(entries []core.CategoryTotal) []categoryJSON {
	out := make([]categoryJSON, len(entries))
	for i, e := range entries {
		out[i] = categoryJSON{Name: e.Name, TotalCr: e.Total.Crores(), Count: e.Count}
	}
	return out
}

type yearTotalJSON struct {
	Year    int     `json:"year"`
	TotalCr float64 `json:"total_cr"`
}

func toYearTotalJSON(entries []core.YearTotal) []yearTotalJSON {
	out := make([]yearTotalJSON, len(entries))
	for i, e := range entries {
		out[i] = yearTotalJSON{Year: e.Year, TotalCr: e.Total.Crores()}
	}
	return out
}
