package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1.00", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0", "0.00", true}, // free contracts are allowed
		{" 2.50 ", "2.50", true},
		{"12.345", "12.345", true}, // precision kept, rounding happens on display
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q unexpected error %v", tc.in, err)
			}
			if want, _ := decimal.NewFromString(tc.out); !got.Equal(want) {
				t.Fatalf("%q expected %s, got %s", tc.in, tc.out, got)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestRoundCurrencyHalfUp(t *testing.T) {
	cases := []struct{ in, out string }{
		{"1.005", "1.01"}, // half rounds up, not to even
		{"1.004", "1.00"},
		{"1.015", "1.02"},
		{"2.675", "2.68"},
		{"0", "0.00"},
	}
	for _, tc := range cases {
		in, _ := decimal.NewFromString(tc.in)
		if got := FormatCurrency(RoundCurrency(in)); got != tc.out {
			t.Fatalf("round %s expected %s, got %s", tc.in, tc.out, got)
		}
	}
}
