package dataset

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

func validRaw() RawRecord {
	return RawRecord{
		Row:         1,
		Date:        "05/01/2015",
		Startup:     "Flipkart",
		Vertical:    "E-Commerce",
		SubVertical: "Online Marketplace",
		City:        "Bangalore",
		Investors:   "Tiger Global, Accel Partners",
		Round:       "Private Equity",
		Amount:      "100.00",
	}
}

func TestRawRecordInvestment(t *testing.T) {
	inv, err := validRaw().Investment()
	if err != nil {
		t.Fatalf("Investment() unexpected error: %v", err)
	}
	if inv.Startup != "Flipkart" {
		t.Errorf("Startup = %q, want Flipkart", inv.Startup)
	}
	if got := inv.Date.MonthKey(); got != (core.MonthKey{Year: 2015, Month: 1}) {
		t.Errorf("MonthKey = %+v, want {2015 1}", got)
	}
	if inv.Amount.Lakhs != 10000 {
		t.Errorf("Amount = %d lakhs, want 10000", inv.Amount.Lakhs)
	}
	want := []string{"Tiger Global", "Accel Partners"}
	if !reflect.DeepEqual(inv.Investors, want) {
		t.Errorf("Investors = %v, want %v", inv.Investors, want)
	}
}

func TestRawRecordInvestment_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*RawRecord)
		wantColumn string
		wantErr    error
	}{
		{
			name:       "bad date",
			mutate:     func(r *RawRecord) { r.Date = "2015-01-05" },
			wantColumn: "date",
			wantErr:    core.ErrInvalidDate,
		},
		{
			name:       "non-numeric amount",
			mutate:     func(r *RawRecord) { r.Amount = "undisclosed" },
			wantColumn: "amount",
			wantErr:    core.ErrInvalidAmount,
		},
		{
			name:       "negative amount",
			mutate:     func(r *RawRecord) { r.Amount = "-5" },
			wantColumn: "amount",
			wantErr:    core.ErrInvalidAmount,
		},
		{
			name:       "empty startup",
			mutate:     func(r *RawRecord) { r.Startup = "" },
			wantColumn: "startup",
			wantErr:    core.ErrEmptyStartup,
		},
		{
			name:       "empty investors",
			mutate:     func(r *RawRecord) { r.Investors = " , " },
			wantColumn: "investors",
			wantErr:    core.ErrNoInvestors,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.Row = 7
			tt.mutate(&raw)

			_, err := raw.Investment()
			if err == nil {
				t.Fatal("Investment() expected error, got nil")
			}
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("error %v is not a *RowError", err)
			}
			if rowErr.Row != 7 {
				t.Errorf("Row = %d, want 7", rowErr.Row)
			}
			if rowErr.Column != tt.wantColumn {
				t.Errorf("Column = %q, want %q", rowErr.Column, tt.wantColumn)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
		})
	}
}

func TestFanOutInvestors(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Sequoia Capital", []string{"Sequoia Capital"}},
		{"Tiger Global, Accel Partners", []string{"Tiger Global", "Accel Partners"}},
		{"A,  B ,C,", []string{"A", "B", "C"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		got := FanOutInvestors(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FanOutInvestors(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
