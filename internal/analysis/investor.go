package analysis

import (
	"sort"
	"strings"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// undisclosedInvestor is the placeholder the dataset uses for unnamed
// backers; it never shows up as a "similar investor".
const undisclosedInvestor = "Undisclosed Investors"

// Investor builds the investor view for an exact name, matched against the
// fanned-out investor lists. An unknown name yields an empty profile.
func (s *Snapshot) Investor(name string) core.InvestorProfile {
	profile := core.InvestorProfile{Name: name}

	positions, ok := s.byInvestor[name]
	if !ok {
		return profile
	}
	profile.Found = true

	records := s.recordsAt(positions)

	for _, inv := range records {
		profile.TotalInvested = profile.TotalInvested.Add(inv.Amount)
	}

	profile.ByStartup = biggestInvestments(records)
	profile.ByVertical = categoryTotals(records, func(inv core.Investment) string { return inv.Vertical })
	profile.BySubVertical = categoryTotals(records, func(inv core.Investment) string { return inv.SubVertical })
	profile.ByCity = categoryTotals(records, func(inv core.Investment) string { return inv.City })
	profile.ByRound = categoryTotals(records, func(inv core.Investment) string { return inv.Round })
	profile.YearOverYear = s.yearTotals(records)

	// Primary vertical is the one on the investor's first record in source
	// order; similar investors are the other backers active there.
	profile.Similar = s.similarInvestors(name, records[0].Vertical)

	sortByDateDesc(records)
	profile.Investments = records

	return profile
}

// biggestInvestments sums per startup and orders descending, ties keeping
// first-appearance order.
func biggestInvestments(records []core.Investment) []core.RankedEntry {
	totals := make(map[string]*core.RankedEntry)
	order := make([]string, 0)

	for _, inv := range records {
		entry, ok := totals[inv.Startup]
		if !ok {
			entry = &core.RankedEntry{Name: inv.Startup}
			totals[inv.Startup] = entry
			order = append(order, inv.Startup)
		}
		entry.Total = entry.Total.Add(inv.Amount)
		entry.Count++
	}

	out := make([]core.RankedEntry, len(order))
	for i, name := range order {
		out[i] = *totals[name]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Lakhs > out[j].Total.Lakhs
	})
	return out
}

// similarInvestors lists the other investors active in the given vertical,
// in first-appearance order. The undisclosed placeholder is skipped. The
// result is deterministic; callers truncate for display.
func (s *Snapshot) similarInvestors(exclude, vertical string) []string {
	if vertical == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, inv := range s.records {
		if inv.Vertical != vertical {
			continue
		}
		for _, name := range inv.Investors {
			if name == exclude || strings.EqualFold(name, undisclosedInvestor) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
