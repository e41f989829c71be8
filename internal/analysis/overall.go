package analysis

import (
	"sort"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// Category selects the grouping key for top-N rankings.
type Category string

const (
	BySector    Category = "sector"
	BySubSector Category = "subsector"
	ByCity      Category = "city"
	ByInvestor  Category = "investor"
	ByStartup   Category = "startup"
	ByRound     Category = "round"
)

// Metric selects what a ranking is ordered by.
type Metric string

const (
	MetricSum   Metric = "sum"
	MetricCount Metric = "count"
)

// DefaultTopN is the ranking size when the caller does not choose one.
const DefaultTopN = 10

// ValidCategory reports whether c names a known grouping key.
func ValidCategory(c Category) bool {
	switch c {
	case BySector, BySubSector, ByCity, ByInvestor, ByStartup, ByRound:
		return true
	}
	return false
}

// ValidMetric reports whether m names a known ranking metric.
func ValidMetric(m Metric) bool {
	return m == MetricSum || m == MetricCount
}

// The source notebook merges a few spelling variants before ranking. The
// merge applies to rankings only; entity lookup sees the raw names.
var (
	cityAliases = map[string]string{
		"Bengaluru": "Bangalore",
	}
	investorAliases = map[string]string{
		"Softbank": "SoftBank Group",
	}
)

// OverallStats computes the headline metric block of the overall view.
func (s *Snapshot) OverallStats() core.OverallStats {
	stats := core.OverallStats{Rounds: len(s.records)}

	perStartup := make(map[string]core.Amount)
	for _, inv := range s.records {
		stats.TotalInvested = stats.TotalInvested.Add(inv.Amount)
		if inv.Amount.Lakhs > stats.MaxInfusion.Lakhs {
			stats.MaxInfusion = inv.Amount
		}
		perStartup[inv.Startup] = perStartup[inv.Startup].Add(inv.Amount)
	}

	stats.FundedStartups = len(perStartup)
	if stats.FundedStartups > 0 {
		stats.AvgTicketSize = stats.TotalInvested.Crores() / float64(stats.FundedStartups)
	}
	return stats
}

// MonthlyTotals groups all records by (year, month) and computes the sum,
// max and mean amount plus the distinct-startup count per bucket, ascending.
// Gap months are zero-filled when the snapshot's options ask for it.
func (s *Snapshot) MonthlyTotals() []core.MonthlyTotal {
	if len(s.records) == 0 {
		return nil
	}

	type bucket struct {
		total    core.Amount
		max      core.Amount
		rounds   int
		startups map[string]struct{}
	}

	buckets := make(map[core.MonthKey]*bucket)
	first := s.records[0].Date.MonthKey()
	last := first
	for _, inv := range s.records {
		key := inv.Date.MonthKey()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{startups: make(map[string]struct{})}
			buckets[key] = b
		}
		b.total = b.total.Add(inv.Amount)
		if inv.Amount.Lakhs > b.max.Lakhs {
			b.max = inv.Amount
		}
		b.rounds++
		b.startups[inv.Startup] = struct{}{}

		if key.Before(first) {
			first = key
		}
		if last.Before(key) {
			last = key
		}
	}

	keys := make([]core.MonthKey, 0, len(buckets))
	if s.opts.ZeroFillMissingPeriods {
		for key := first; !last.Before(key); key = key.Next() {
			keys = append(keys, key)
		}
	} else {
		for key := range buckets {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	}

	out := make([]core.MonthlyTotal, 0, len(keys))
	for _, key := range keys {
		mt := core.MonthlyTotal{Key: key}
		if b, ok := buckets[key]; ok {
			mt.Total = b.total
			mt.Max = b.max
			mt.Rounds = b.rounds
			mt.Startups = len(b.startups)
			mt.Mean = b.total.Crores() / float64(b.rounds)
		}
		out = append(out, mt)
	}
	return out
}

// TopByCategory ranks grouping keys by summed amount or record count,
// descending, and returns the first n. Zero-valued groups are dropped, the
// way the source notebook filters them. Ties keep the key's first appearance
// order in the source table, which makes rankings reproducible.
func (s *Snapshot) TopByCategory(by Category, metric Metric, n int) ([]core.RankedEntry, error) {
	if !ValidCategory(by) {
		return nil, core.ErrInvalidCategory
	}
	if n <= 0 {
		return nil, core.ErrInvalidTopN
	}

	totals := make(map[string]*core.RankedEntry)
	order := make([]string, 0)

	add := func(name string, amount core.Amount) {
		if name == "" {
			return
		}
		entry, ok := totals[name]
		if !ok {
			entry = &core.RankedEntry{Name: name}
			totals[name] = entry
			order = append(order, name)
		}
		entry.Total = entry.Total.Add(amount)
		entry.Count++
	}

	for _, inv := range s.records {
		switch by {
		case BySector:
			add(inv.Vertical, inv.Amount)
		case BySubSector:
			add(inv.SubVertical, inv.Amount)
		case ByCity:
			add(canonical(cityAliases, inv.City), inv.Amount)
		case ByStartup:
			add(inv.Startup, inv.Amount)
		case ByRound:
			add(inv.Round, inv.Amount)
		case ByInvestor:
			for _, name := range inv.Investors {
				add(canonical(investorAliases, name), inv.Amount)
			}
		}
	}

	ranked := make([]core.RankedEntry, 0, len(order))
	for _, name := range order {
		entry := *totals[name]
		switch metric {
		case MetricSum:
			if entry.Total.IsZero() {
				continue
			}
		case MetricCount:
			if entry.Count == 0 {
				continue
			}
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if metric == MetricCount {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Total.Lakhs > ranked[j].Total.Lakhs
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// MostFundedStartupByYear picks each year's top startup by summed amount,
// ascending years. Ties keep first-appearance order.
func (s *Snapshot) MostFundedStartupByYear() []core.YearLeader {
	type yearStartup struct {
		year    int
		startup string
	}

	totals := make(map[yearStartup]core.Amount)
	order := make([]yearStartup, 0)
	for _, inv := range s.records {
		key := yearStartup{year: inv.Date.Year(), startup: inv.Startup}
		if _, ok := totals[key]; !ok {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(inv.Amount)
	}

	leaders := make(map[int]core.YearLeader)
	years := make([]int, 0)
	for _, key := range order {
		total := totals[key]
		leader, ok := leaders[key.year]
		if !ok {
			years = append(years, key.year)
		}
		if !ok || total.Lakhs > leader.Total.Lakhs {
			leaders[key.year] = core.YearLeader{Year: key.year, Startup: key.startup, Total: total}
		}
	}

	sort.Ints(years)
	out := make([]core.YearLeader, len(years))
	for i, year := range years {
		out[i] = leaders[year]
	}
	return out
}

// FundingHeatmap pivots summed amounts into a year-by-month matrix,
// ascending years.
func (s *Snapshot) FundingHeatmap() []core.HeatmapRow {
	totals := make(map[int]*core.HeatmapRow)
	years := make([]int, 0)

	for _, inv := range s.records {
		year := inv.Date.Year()
		row, ok := totals[year]
		if !ok {
			row = &core.HeatmapRow{Year: year}
			totals[year] = row
			years = append(years, year)
		}
		m := int(inv.Date.Month()) - 1
		row.Months[m] = row.Months[m].Add(inv.Amount)
	}

	sort.Ints(years)
	out := make([]core.HeatmapRow, len(years))
	for i, year := range years {
		out[i] = *totals[year]
	}
	return out
}

// YearOverYear sums all records per year, ascending, honoring the zero-fill
// option. It is the overall counterpart of the per-investor trend.
func (s *Snapshot) YearOverYear() []core.YearTotal {
	return s.yearTotals(s.records)
}

func canonical(aliases map[string]string, name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}
