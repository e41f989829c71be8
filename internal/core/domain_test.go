package core

import "testing"

func validInvestment() Investment {
	return Investment{
		Date:        NewDate(2015, 1, 5),
		Startup:     "Flipkart",
		Vertical:    "E-Commerce",
		SubVertical: "Online Marketplace",
		City:        "Bangalore",
		Investors:   []string{"Tiger Global", "Accel Partners"},
		Round:       "Private Equity",
		Amount:      Amount{Lakhs: 10000},
	}
}

func TestInvestmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Investment)
		wantErr error
	}{
		{name: "valid", mutate: func(*Investment) {}},
		{name: "zero amount is valid", mutate: func(inv *Investment) { inv.Amount = Amount{} }},
		{name: "zero date", mutate: func(inv *Investment) { inv.Date = Date{} }, wantErr: ErrInvalidDate},
		{name: "empty startup", mutate: func(inv *Investment) { inv.Startup = "  " }, wantErr: ErrEmptyStartup},
		{name: "negative amount", mutate: func(inv *Investment) { inv.Amount = Amount{Lakhs: -1} }, wantErr: ErrInvalidAmount},
		{name: "no investors", mutate: func(inv *Investment) { inv.Investors = nil }, wantErr: ErrNoInvestors},
		{name: "blank investor", mutate: func(inv *Investment) { inv.Investors = []string{""} }, wantErr: ErrNoInvestors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvestment()
			tt.mutate(&inv)
			err := inv.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	d := NewDate(2016, 2, 29)
	key := d.MonthKey()
	if key.Year != 2016 || key.Month != 2 {
		t.Fatalf("MonthKey() = %+v, want {2016 2}", key)
	}
	if got := key.String(); got != "02-2016" {
		t.Errorf("String() = %q, want %q", got, "02-2016")
	}

	if !(MonthKey{Year: 2015, Month: 12}).Before(MonthKey{Year: 2016, Month: 1}) {
		t.Error("Dec 2015 should be before Jan 2016")
	}
	if (MonthKey{Year: 2016, Month: 3}).Before(MonthKey{Year: 2016, Month: 3}) {
		t.Error("a month is not before itself")
	}

	next := (MonthKey{Year: 2015, Month: 12}).Next()
	if next != (MonthKey{Year: 2016, Month: 1}) {
		t.Errorf("Next() = %+v, want {2016 1}", next)
	}
}
