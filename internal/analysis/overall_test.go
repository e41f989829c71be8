package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

func TestOverallStats(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})
	stats := snap.OverallStats()

	if got, want := stats.TotalInvested.Lakhs, int64(490_00); got != want {
		t.Errorf("TotalInvested = %d lakhs, want %d", got, want)
	}
	if got, want := stats.MaxInfusion.Lakhs, int64(200_00); got != want {
		t.Errorf("MaxInfusion = %d lakhs, want %d", got, want)
	}
	if got, want := stats.FundedStartups, 3; got != want {
		t.Errorf("FundedStartups = %d, want %d", got, want)
	}
	if got, want := stats.Rounds, 5; got != want {
		t.Errorf("Rounds = %d, want %d", got, want)
	}
	// 490 Cr across 3 startups.
	if got, want := stats.AvgTicketSize, 490.0/3; got != want {
		t.Errorf("AvgTicketSize = %v, want %v", got, want)
	}
}

func TestOverallStatsEmpty(t *testing.T) {
	snap := NewSnapshot(nil, Options{})
	stats := snap.OverallStats()
	if stats.Rounds != 0 || stats.FundedStartups != 0 || stats.AvgTicketSize != 0 {
		t.Errorf("empty snapshot stats = %+v, want zero values", stats)
	}
}

func TestMonthlyTotals(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})
	got := snap.MonthlyTotals()

	wantKeys := []core.MonthKey{
		{Year: 2015, Month: 1},
		{Year: 2015, Month: 3},
		{Year: 2016, Month: 2},
		{Year: 2016, Month: 7},
	}
	if len(got) != len(wantKeys) {
		t.Fatalf("got %d buckets, want %d", len(got), len(wantKeys))
	}
	for i, mt := range got {
		if mt.Key != wantKeys[i] {
			t.Errorf("bucket %d key = %v, want %v", i, mt.Key, wantKeys[i])
		}
	}

	// 2015-03: Flipkart 200 + Ola 80 = 280 Cr over 2 rounds, 2 startups.
	march := got[1]
	if march.Total.Lakhs != 280_00 {
		t.Errorf("2015-03 total = %d lakhs, want 28000", march.Total.Lakhs)
	}
	if march.Max.Lakhs != 200_00 {
		t.Errorf("2015-03 max = %d lakhs, want 20000", march.Max.Lakhs)
	}
	if march.Rounds != 2 || march.Startups != 2 {
		t.Errorf("2015-03 rounds/startups = %d/%d, want 2/2", march.Rounds, march.Startups)
	}
	if march.Mean != 140.0 {
		t.Errorf("2015-03 mean = %v Cr, want 140", march.Mean)
	}
}

// The per-month sums must add back up to the headline total.
func TestMonthlyTotalsSumMatchesGrandTotal(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	var sum core.Amount
	for _, mt := range snap.MonthlyTotals() {
		sum = sum.Add(mt.Total)
	}
	if want := snap.OverallStats().TotalInvested; sum != want {
		t.Errorf("monthly sum = %v, grand total = %v", sum, want)
	}
}

func TestMonthlyTotalsZeroFill(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{ZeroFillMissingPeriods: true})
	got := snap.MonthlyTotals()

	// 2015-01 through 2016-07 inclusive is 19 months.
	if len(got) != 19 {
		t.Fatalf("got %d buckets, want 19", len(got))
	}
	// 2015-02 is a gap month: present, zero-valued.
	feb := got[1]
	if feb.Key != (core.MonthKey{Year: 2015, Month: 2}) {
		t.Fatalf("bucket 1 key = %v, want 02-2015", feb.Key)
	}
	if !feb.Total.IsZero() || feb.Rounds != 0 || feb.Startups != 0 {
		t.Errorf("gap month not zero: %+v", feb)
	}
}

func TestTopByCategory(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	tests := []struct {
		name   string
		by     Category
		metric Metric
		n      int
		want   []string
	}{
		{
			name:   "startups by sum",
			by:     ByStartup,
			metric: MetricSum,
			n:      10,
			want:   []string{"Flipkart", "Ola", "Snapdeal"},
		},
		{
			name:   "sectors by sum",
			by:     BySector,
			metric: MetricSum,
			n:      10,
			want:   []string{"E-Commerce", "Transport"},
		},
		{
			name:   "truncated to n",
			by:     ByStartup,
			metric: MetricSum,
			n:      2,
			want:   []string{"Flipkart", "Ola"},
		},
		{
			name:   "cities merge aliases",
			by:     ByCity,
			metric: MetricCount,
			n:      10,
			want:   []string{"Bangalore", "Delhi"},
		},
		{
			// Softbank is folded into SoftBank Group: 80 + 50 + 60 = 190 Cr.
			name:   "investors merge aliases",
			by:     ByInvestor,
			metric: MetricSum,
			n:      3,
			want:   []string{"Tiger Global", "Accel Partners", "SoftBank Group"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := snap.TopByCategory(tt.by, tt.metric, tt.n)
			if err != nil {
				t.Fatal(err)
			}
			if len(ranked) > tt.n {
				t.Errorf("got %d entries, n = %d", len(ranked), tt.n)
			}

			names := make([]string, len(ranked))
			seen := make(map[string]struct{})
			for i, entry := range ranked {
				names[i] = entry.Name
				if _, dup := seen[entry.Name]; dup {
					t.Errorf("duplicate key %q in ranking", entry.Name)
				}
				seen[entry.Name] = struct{}{}
				if i > 0 {
					prev, cur := ranked[i-1], entry
					if tt.metric == MetricCount && cur.Count > prev.Count {
						t.Errorf("ranking not descending at %d: %d > %d", i, cur.Count, prev.Count)
					}
					if tt.metric == MetricSum && cur.Total.Lakhs > prev.Total.Lakhs {
						t.Errorf("ranking not descending at %d: %v > %v", i, cur.Total, prev.Total)
					}
				}
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestTopByCategoryAliasTotals(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	ranked, err := snap.TopByCategory(ByInvestor, MetricSum, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range ranked {
		if entry.Name == "Softbank" {
			t.Error("raw alias Softbank must not appear in the ranking")
		}
		if entry.Name == "SoftBank Group" {
			if entry.Total.Lakhs != 190_00 {
				t.Errorf("SoftBank Group total = %d lakhs, want 19000", entry.Total.Lakhs)
			}
			if entry.Count != 3 {
				t.Errorf("SoftBank Group count = %d, want 3", entry.Count)
			}
		}
	}
}

func TestTopByCategoryInvalidArgs(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	for _, n := range []int{0, -1} {
		if _, err := snap.TopByCategory(ByStartup, MetricSum, n); !errors.Is(err, core.ErrInvalidTopN) {
			t.Errorf("n = %d: err = %v, want ErrInvalidTopN", n, err)
		}
	}
	if _, err := snap.TopByCategory(Category("planet"), MetricSum, 5); !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("unknown category: err = %v, want ErrInvalidCategory", err)
	}

	// The category is checked before any records are visited.
	empty := NewSnapshot(nil, Options{})
	if _, err := empty.TopByCategory(Category("planet"), MetricSum, 5); !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("unknown category on empty snapshot: err = %v, want ErrInvalidCategory", err)
	}
}

func TestTopByCategoryDropsZeroGroups(t *testing.T) {
	records := []core.Investment{
		rec(2018, 1, 1, "FreeRide", "Transport", "Pune", 0),
		rec(2018, 2, 1, "PaidRide", "Transport", "Pune", 10_00),
	}
	snap := NewSnapshot(records, Options{})

	ranked, err := snap.TopByCategory(ByStartup, MetricSum, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 1 || ranked[0].Name != "PaidRide" {
		t.Errorf("got %v, want only PaidRide", ranked)
	}
}

func TestMostFundedStartupByYear(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	want := []core.YearLeader{
		{Year: 2015, Startup: "Flipkart", Total: core.Amount{Lakhs: 300_00}},
		{Year: 2016, Startup: "Snapdeal", Total: core.Amount{Lakhs: 60_00}},
	}
	if got := snap.MostFundedStartupByYear(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFundingHeatmap(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})
	rows := snap.FundingHeatmap()

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	y2015 := rows[0]
	if y2015.Year != 2015 {
		t.Fatalf("first row year = %d, want 2015", y2015.Year)
	}
	if y2015.Months[0].Lakhs != 100_00 {
		t.Errorf("2015 Jan = %d lakhs, want 10000", y2015.Months[0].Lakhs)
	}
	if y2015.Months[2].Lakhs != 280_00 {
		t.Errorf("2015 Mar = %d lakhs, want 28000", y2015.Months[2].Lakhs)
	}
	if !y2015.Months[1].IsZero() {
		t.Errorf("2015 Feb = %v, want zero", y2015.Months[1])
	}
}

func TestYearOverYear(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	want := []core.YearTotal{
		{Year: 2015, Total: core.Amount{Lakhs: 380_00}},
		{Year: 2016, Total: core.Amount{Lakhs: 110_00}},
	}
	if got := snap.YearOverYear(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
