package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Date is the day a funding round was announced. The dataset carries full
	// dates but all trend aggregation happens at month/year granularity via
	// MonthKey.
	Date struct {
		time.Time
	}

	// MonthKey is the comparable (year, month) bucket derived from a Date.
	MonthKey struct {
		Year  int
		Month int // 1-12
	}

	// Investment is one funding event from the cleaned dataset. Investors is
	// already fanned out: one element per individual investor, so a record
	// with "Sequoia Capital, Accel Partners" contributes to both investors'
	// totals.
	Investment struct {
		Date        Date
		Startup     string
		Vertical    string // primary sector
		SubVertical string
		City        string
		Investors   []string
		Round       string // investment type (Seed, Series A, Private Equity, ...)
		Amount      Amount // disclosed amount; zero when undisclosed
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyStartup    = errors.New("empty startup name")
	ErrNoInvestors     = errors.New("no investors")
	ErrInvalidTopN     = errors.New("top-n limit must be positive")
	ErrInvalidCategory = errors.New("unknown ranking category")
)

// NewDate creates a Date from year, month, day (UTC midnight).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MonthKey returns the (year, month) bucket this date falls into.
func (d Date) MonthKey() MonthKey {
	return MonthKey{Year: d.Time.Year(), Month: int(d.Time.Month())}
}

// Before reports whether k is chronologically before other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Next returns the following calendar month.
func (k MonthKey) Next() MonthKey {
	if k.Month == 12 {
		return MonthKey{Year: k.Year + 1, Month: 1}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// String renders the bucket as "MM-YYYY", the label the dashboard charts use.
func (k MonthKey) String() string {
	return fmt.Sprintf("%02d-%d", k.Month, k.Year)
}

func (inv Investment) Validate() error {
	if err := inv.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(inv.Startup) == "" {
		return ErrEmptyStartup
	}
	if inv.Amount.Lakhs < 0 {
		return ErrInvalidAmount
	}
	if len(inv.Investors) == 0 {
		return ErrNoInvestors
	}
	for _, name := range inv.Investors {
		if strings.TrimSpace(name) == "" {
			return ErrNoInvestors
		}
	}
	return nil
}
