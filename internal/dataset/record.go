package dataset

import (
	"strings"
	"time"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// DateLayout is the day/month/year format the cleaned dataset uses.
const DateLayout = "02/01/2006"

// Columns of the cleaned dataset, in canonical order. Every source must
// provide all of them; loaders fail fast on a missing column.
var Columns = []string{"date", "startup", "vertical", "subvertical", "city", "investors", "round", "amount"}

// RawRecord is one dataset row before domain conversion. All sources (CSV,
// SQLite, Sheets) funnel through it so parsing and investor fan-out live in
// exactly one place.
type RawRecord struct {
	Row         int // 1-based source position for error reporting
	Date        string
	Startup     string
	Vertical    string
	SubVertical string
	City        string
	Investors   string // comma-joined, as in the source
	Round       string
	Amount      string // decimal crores
}

// Investment converts the raw row into a validated domain record. Errors are
// *RowError values naming the offending row and column.
func (r RawRecord) Investment() (core.Investment, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return core.Investment{}, &RowError{Row: r.Row, Column: "date", Err: core.ErrInvalidDate}
	}

	amount, err := core.ParseCrores(r.Amount)
	if err != nil {
		return core.Investment{}, &RowError{Row: r.Row, Column: "amount", Err: err}
	}

	inv := core.Investment{
		Date:        core.Date{Time: t},
		Startup:     strings.TrimSpace(r.Startup),
		Vertical:    strings.TrimSpace(r.Vertical),
		SubVertical: strings.TrimSpace(r.SubVertical),
		City:        strings.TrimSpace(r.City),
		Investors:   FanOutInvestors(r.Investors),
		Round:       strings.TrimSpace(r.Round),
		Amount:      amount,
	}

	if err := inv.Validate(); err != nil {
		column := "startup"
		switch err {
		case core.ErrNoInvestors:
			column = "investors"
		case core.ErrInvalidAmount:
			column = "amount"
		case core.ErrInvalidDate:
			column = "date"
		}
		return core.Investment{}, &RowError{Row: r.Row, Column: column, Err: err}
	}

	return inv, nil
}

// FanOutInvestors splits the multi-valued investor field into individual
// names. This is the single fan-out step: one record with three co-investors
// becomes three attributable names on the same record.
func FanOutInvestors(field string) []string {
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// JoinInvestors is the inverse of FanOutInvestors, used when persisting
// records to the SQLite backend.
func JoinInvestors(names []string) string {
	return strings.Join(names, ", ")
}
