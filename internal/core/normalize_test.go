package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeCost(t *testing.T) {
	cases := []struct {
		price    string
		interval int
		month    string
		year     string
	}{
		{"365", 365, "30.00", "365.00"},
		{"0", 365, "0.00", "0.00"},
		{"300", 30, "300.00", "3650.00"},
		{"7", 7, "30.00", "365.00"},
		{"9.99", 30, "9.99", "121.55"},
		{"10", 3, "100.00", "1216.67"},
	}
	for _, tc := range cases {
		price, _ := decimal.NewFromString(tc.price)
		month, year, err := NormalizeCost(price, tc.interval)
		if err != nil {
			t.Fatalf("normalize(%s, %d): %v", tc.price, tc.interval, err)
		}
		if got := FormatCurrency(month); got != tc.month {
			t.Fatalf("normalize(%s, %d) month expected %s, got %s", tc.price, tc.interval, tc.month, got)
		}
		if got := FormatCurrency(year); got != tc.year {
			t.Fatalf("normalize(%s, %d) year expected %s, got %s", tc.price, tc.interval, tc.year, got)
		}
	}
}

func TestNormalizeCostInvalidInterval(t *testing.T) {
	for _, interval := range []int{0, -1, -365} {
		_, _, err := NormalizeCost(decimal.NewFromInt(10), interval)
		if err != ErrInvalidInterval {
			t.Fatalf("interval %d expected ErrInvalidInterval, got %v", interval, err)
		}
	}
}
