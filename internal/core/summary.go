package core

// MonthlyTotal aggregates all funding activity inside one (year, month)
// bucket.
type MonthlyTotal struct {
	Key      MonthKey
	Total    Amount
	Max      Amount  // largest single infusion in the month
	Mean     float64 // average round size in crores
	Rounds   int     // funding rounds recorded
	Startups int     // distinct startups funded
}

// CategoryTotal is an amount aggregated under one grouping key (a sector,
// city, round type, ...), listed in ascending key order.
type CategoryTotal struct {
	Name  string
	Total Amount
	Count int
}

// RankedEntry is one row of a top-N ranking, in descending aggregate order.
type RankedEntry struct {
	Name  string
	Total Amount
	Count int
}

// YearTotal is the amount summed over one calendar year.
type YearTotal struct {
	Year  int
	Total Amount
}

// YearLeader names the most funded startup of one year.
type YearLeader struct {
	Year    int
	Startup string
	Total   Amount
}

// HeatmapRow is one year of the year-by-month funding pivot.
type HeatmapRow struct {
	Year   int
	Months [12]Amount // index 0 is January
}

// OverallStats is the headline metric block of the overall view.
type OverallStats struct {
	TotalInvested  Amount
	MaxInfusion    Amount  // biggest single-startup infusion
	AvgTicketSize  float64 // mean per-startup total, in crores
	FundedStartups int     // distinct startups
	Rounds         int
}

// StartupProfile is everything the startup view shows for one name.
// Found is false when the name has no records; the rest is then empty.
type StartupProfile struct {
	Name  string
	Found bool

	Vertical    string
	SubVertical string
	City        string
	Round       string
	Investors   []string

	TotalFunding Amount
	Investments  []Investment // most recent first
	Similar      []string     // other startups in the same vertical
}

// InvestorProfile is everything the investor view shows for one name.
type InvestorProfile struct {
	Name  string
	Found bool

	TotalInvested Amount
	Investments   []Investment  // most recent first
	ByStartup     []RankedEntry // biggest investments, descending
	ByVertical    []CategoryTotal
	BySubVertical []CategoryTotal
	ByCity        []CategoryTotal
	ByRound       []CategoryTotal
	YearOverYear  []YearTotal // ascending years
	Similar       []string    // other investors in the same primary vertical
}
