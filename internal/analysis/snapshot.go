// Package analysis computes the descriptive aggregates the dashboard shows:
// monthly trends, top-N rankings, and per-startup / per-investor profiles.
//
// All queries are pure functions over an immutable Snapshot built once from
// the loaded dataset, so repeated queries return identical results and the
// layer needs no locking.
package analysis

import (
	"sort"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// Options are the aggregation policies the caller decides once at startup.
type Options struct {
	// ZeroFillMissingPeriods inserts explicit zero entries for months and
	// years between the first and last observed period that have no records.
	// Off by default, matching the source notebook's group-by behavior.
	ZeroFillMissingPeriods bool
}

// Snapshot is the loaded dataset plus the derived indexes every query needs.
// It is immutable after construction.
type Snapshot struct {
	opts    Options
	records []core.Investment

	byStartup  map[string][]int // source-order record positions
	byInvestor map[string][]int // fan-out index: investor name -> positions

	startupNames  []string // sorted
	investorNames []string // sorted
}

// NewSnapshot copies the records and builds the lookup indexes. The investor
// index is the explicit fan-out of the multi-valued investor field: a record
// appears once under each of its investors.
func NewSnapshot(records []core.Investment, opts Options) *Snapshot {
	s := &Snapshot{
		opts:       opts,
		records:    make([]core.Investment, len(records)),
		byStartup:  make(map[string][]int),
		byInvestor: make(map[string][]int),
	}
	copy(s.records, records)

	for i, inv := range s.records {
		s.byStartup[inv.Startup] = append(s.byStartup[inv.Startup], i)
		for _, name := range inv.Investors {
			s.byInvestor[name] = append(s.byInvestor[name], i)
		}
	}

	s.startupNames = sortedKeys(s.byStartup)
	s.investorNames = sortedKeys(s.byInvestor)

	return s
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Options returns the aggregation policies the snapshot was built with.
func (s *Snapshot) Options() Options {
	return s.opts
}

// StartupNames lists every distinct startup, sorted, for the view selector.
func (s *Snapshot) StartupNames() []string {
	return append([]string(nil), s.startupNames...)
}

// InvestorNames lists every distinct individual investor, sorted.
func (s *Snapshot) InvestorNames() []string {
	return append([]string(nil), s.investorNames...)
}

// recordsAt resolves index positions into records, preserving order.
func (s *Snapshot) recordsAt(positions []int) []core.Investment {
	out := make([]core.Investment, len(positions))
	for i, p := range positions {
		out[i] = s.records[p]
	}
	return out
}

// sortByDateDesc orders records most-recent-first. The sort is stable so
// same-day records keep their source order and results stay reproducible.
func sortByDateDesc(records []core.Investment) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Time.After(records[j].Date.Time)
	})
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// categoryTotals groups records by the given key function and sums amounts.
// Keys are returned in ascending order, the order the per-entity breakdown
// tables display. Empty keys are skipped.
func categoryTotals(records []core.Investment, key func(core.Investment) string) []core.CategoryTotal {
	totals := make(map[string]*core.CategoryTotal)
	names := make([]string, 0)

	for _, inv := range records {
		k := key(inv)
		if k == "" {
			continue
		}
		ct, ok := totals[k]
		if !ok {
			ct = &core.CategoryTotal{Name: k}
			totals[k] = ct
			names = append(names, k)
		}
		ct.Total = ct.Total.Add(inv.Amount)
		ct.Count++
	}

	sort.Strings(names)
	out := make([]core.CategoryTotal, len(names))
	for i, name := range names {
		out[i] = *totals[name]
	}
	return out
}

// yearTotals sums amounts per calendar year, ascending, zero-filling gap
// years when the snapshot's options ask for it.
func (s *Snapshot) yearTotals(records []core.Investment) []core.YearTotal {
	if len(records) == 0 {
		return nil
	}

	totals := make(map[int]core.Amount)
	minYear, maxYear := records[0].Date.Year(), records[0].Date.Year()
	for _, inv := range records {
		year := inv.Date.Year()
		totals[year] = totals[year].Add(inv.Amount)
		if year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	var out []core.YearTotal
	if s.opts.ZeroFillMissingPeriods {
		for year := minYear; year <= maxYear; year++ {
			out = append(out, core.YearTotal{Year: year, Total: totals[year]})
		}
		return out
	}

	years := make([]int, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		out = append(out, core.YearTotal{Year: year, Total: totals[year]})
	}
	return out
}
