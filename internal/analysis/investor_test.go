package analysis

import (
	"reflect"
	"testing"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

func TestInvestorProfile(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})
	profile := snap.Investor("SoftBank Group")

	if !profile.Found {
		t.Fatal("SoftBank Group should be found")
	}
	// Flipkart 50 + Ola 80; the Softbank spelling is a different raw name.
	if got, want := profile.TotalInvested.Lakhs, int64(130_00); got != want {
		t.Errorf("TotalInvested = %d lakhs, want %d", got, want)
	}

	wantByStartup := []core.RankedEntry{
		{Name: "Ola", Total: core.Amount{Lakhs: 80_00}, Count: 1},
		{Name: "Flipkart", Total: core.Amount{Lakhs: 50_00}, Count: 1},
	}
	if !reflect.DeepEqual(profile.ByStartup, wantByStartup) {
		t.Errorf("ByStartup = %v, want %v", profile.ByStartup, wantByStartup)
	}

	wantByVertical := []core.CategoryTotal{
		{Name: "E-Commerce", Total: core.Amount{Lakhs: 50_00}, Count: 1},
		{Name: "Transport", Total: core.Amount{Lakhs: 80_00}, Count: 1},
	}
	if !reflect.DeepEqual(profile.ByVertical, wantByVertical) {
		t.Errorf("ByVertical = %v, want %v", profile.ByVertical, wantByVertical)
	}

	// History is most-recent-first.
	if len(profile.Investments) != 2 {
		t.Fatalf("got %d investments, want 2", len(profile.Investments))
	}
	if profile.Investments[0].Startup != "Flipkart" || profile.Investments[1].Startup != "Ola" {
		t.Errorf("investments out of order: %v then %v",
			profile.Investments[0].Startup, profile.Investments[1].Startup)
	}
}

func TestInvestorUnknown(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})
	profile := snap.Investor("Berkshire")

	if profile.Found {
		t.Error("unknown investor should not be found")
	}
	if len(profile.Investments) != 0 || len(profile.ByStartup) != 0 || len(profile.Similar) != 0 {
		t.Errorf("unknown investor should have empty lists, got %+v", profile)
	}
	if !profile.TotalInvested.IsZero() {
		t.Errorf("TotalInvested = %v, want zero", profile.TotalInvested)
	}
}

// An investor with records only in 2015 and 2019 gets exactly those two
// entries unless zero-fill is turned on, which pads the gap years.
func TestInvestorYearOverYear(t *testing.T) {
	records := []core.Investment{
		rec(2015, 6, 1, "EarlyBird", "FinTech", "Mumbai", 30_00, "Patient Capital"),
		rec(2019, 2, 1, "LateBloom", "FinTech", "Mumbai", 70_00, "Patient Capital"),
	}

	sparse := NewSnapshot(records, Options{}).Investor("Patient Capital")
	wantSparse := []core.YearTotal{
		{Year: 2015, Total: core.Amount{Lakhs: 30_00}},
		{Year: 2019, Total: core.Amount{Lakhs: 70_00}},
	}
	if !reflect.DeepEqual(sparse.YearOverYear, wantSparse) {
		t.Errorf("zero-fill off: got %v, want %v", sparse.YearOverYear, wantSparse)
	}

	filled := NewSnapshot(records, Options{ZeroFillMissingPeriods: true}).Investor("Patient Capital")
	if len(filled.YearOverYear) != 5 {
		t.Fatalf("zero-fill on: got %d entries, want 5 (2015..2019)", len(filled.YearOverYear))
	}
	for i, yt := range filled.YearOverYear {
		if yt.Year != 2015+i {
			t.Errorf("entry %d year = %d, want %d", i, yt.Year, 2015+i)
		}
	}
	if !filled.YearOverYear[1].Total.IsZero() {
		t.Errorf("2016 total = %v, want zero", filled.YearOverYear[1].Total)
	}
}

func TestInvestorSimilar(t *testing.T) {
	snap := NewSnapshot(flipkartFixture(), Options{})

	// Tiger Global's primary vertical is E-Commerce; the other backers there
	// are Accel Partners, SoftBank Group and Softbank, in appearance order.
	got := snap.Investor("Tiger Global").Similar
	want := []string{"Accel Partners", "SoftBank Group", "Softbank"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Similar = %v, want %v", got, want)
	}
}

func TestInvestorSimilarSkipsUndisclosed(t *testing.T) {
	records := []core.Investment{
		rec(2018, 1, 1, "Alpha", "HealthTech", "Chennai", 10_00, "Named Fund"),
		rec(2018, 2, 1, "Beta", "HealthTech", "Chennai", 20_00, "Undisclosed Investors"),
		rec(2018, 3, 1, "Gamma", "HealthTech", "Chennai", 15_00, "Other Fund"),
	}
	snap := NewSnapshot(records, Options{})

	got := snap.Investor("Named Fund").Similar
	want := []string{"Other Fund"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Similar = %v, want %v", got, want)
	}
}

func TestBiggestInvestmentsTiesKeepAppearanceOrder(t *testing.T) {
	records := []core.Investment{
		rec(2018, 1, 1, "First", "SaaS", "Pune", 25_00, "Even Fund"),
		rec(2018, 2, 1, "Second", "SaaS", "Pune", 25_00, "Even Fund"),
	}
	snap := NewSnapshot(records, Options{})

	got := snap.Investor("Even Fund").ByStartup
	if len(got) != 2 || got[0].Name != "First" || got[1].Name != "Second" {
		t.Errorf("tied entries reordered: %v", got)
	}
}
