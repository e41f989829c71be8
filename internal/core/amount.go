// Package core holds the investment domain model shared by the dataset
// loaders, the analysis layer, and the HTTP presentation.
//
// This file contains fixed-point handling of funding amounts. The cleaned
// dataset expresses amounts in crore rupees with two decimal places; one
// hundredth of a crore is exactly one lakh, so amounts are stored as integer
// lakhs and aggregate sums stay exact.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Amount is a funding amount in integer lakh rupees (1.00 Cr == 100 lakh).
type Amount struct {
	Lakhs int64
}

// ParseCrores converts a decimal crore string to an Amount.
//
// It accepts both dot (39.66) and comma (39,66) decimal separators and
// performs half-up rounding on the third decimal place. Zero is valid (the
// dataset marks undisclosed rounds as 0); negative values and signs are not.
//
// Examples:
//
//	ParseCrores("39.66") -> 3966 lakh
//	ParseCrores("0")     -> 0 lakh
//	ParseCrores("1.005") -> 101 lakh (rounds up)
func ParseCrores(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Amount{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Amount{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Amount{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Amount{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Amount{}, ErrInvalidAmount
	}
	// Two fractional digits are lakhs; half-up rounding on the third.
	var fracLakhs int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracLakhs = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracLakhs += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracLakhs++
			}
		}
	}
	return Amount{Lakhs: iv*100 + fracLakhs}, nil
}

// Crores returns the crore value as a float64 for display purposes.
// Use Lakhs for calculations to avoid floating-point drift.
func (a Amount) Crores() float64 {
	return float64(a.Lakhs) / 100.0
}

// Add returns the sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return Amount{Lakhs: a.Lakhs + b.Lakhs}
}

// IsZero reports whether the amount is exactly zero (undisclosed rounds).
func (a Amount) IsZero() bool {
	return a.Lakhs == 0
}

// String formats the amount as crore rupees, e.g. "₹39.66 Cr".
func (a Amount) String() string {
	neg := a.Lakhs < 0
	l := a.Lakhs
	if neg {
		l = -l
	}
	s := strconv.FormatInt(l/100, 10) + "." + twoDigits(l%100)
	if neg {
		return "-₹" + s + " Cr"
	}
	return "₹" + s + " Cr"
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
