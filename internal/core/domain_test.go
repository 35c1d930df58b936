package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2025 || int(d.Month()) != 3 || d.Day() != 1 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("01.03.2025"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d := NewDate(2025, 1, 31).AddDays(1)
	if d.String() != "2025-02-01" {
		t.Fatalf("expected 2025-02-01, got %s", d)
	}
}

func TestContractValidate(t *testing.T) {
	if err := (Contract{Name: "Strom"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Contract{Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestContractReminderDue(t *testing.T) {
	today := NewDate(2025, 6, 15)
	past := NewDate(2025, 6, 1)
	future := NewDate(2025, 7, 1)

	if (Contract{}).ReminderDue(today) {
		t.Fatalf("nil reminder must not be due")
	}
	if !(Contract{Reminder: &past}).ReminderDue(today) {
		t.Fatalf("past reminder must be due")
	}
	if !(Contract{Reminder: &today}).ReminderDue(today) {
		t.Fatalf("reminder on today must be due")
	}
	if (Contract{Reminder: &future}).ReminderDue(today) {
		t.Fatalf("future reminder must not be due")
	}
}

func TestPricingPeriodValidate(t *testing.T) {
	good := PricingPeriod{
		Start:               NewDate(2025, 1, 1),
		PaymentIntervalDays: 30,
		Price:               decimal.NewFromInt(10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.PaymentIntervalDays = 0
	if err := bad.Validate(); err != ErrInvalidInterval {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}

	bad = good
	bad.Price = decimal.NewFromInt(-1)
	if err := bad.Validate(); err != ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	// end before start is deliberately not rejected at save time
	end := NewDate(2024, 1, 1)
	permissive := good
	permissive.End = &end
	if err := permissive.Validate(); err != nil {
		t.Fatalf("expected permissive validate, got %v", err)
	}
}

func TestTagModeValidate(t *testing.T) {
	if err := TagModeAnd.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := TagMode("xor").Validate(); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
