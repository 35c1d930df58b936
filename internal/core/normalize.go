package core

import "github.com/shopspring/decimal"

var (
	daysPerMonth = decimal.NewFromInt(30)
	daysPerYear  = decimal.NewFromInt(365)
)

// NormalizeCost projects a price billed every intervalDays onto nominal
// per-month and per-year run-rate figures, both rounded to two decimals.
//
// The 30/365 convention is applied uniformly regardless of the actual
// interval length: a contract billed every 7 days and one billed every 365
// days are both projected onto a 30-day month and a 365-day year. That keeps
// the figures comparable across heterogeneous billing intervals.
func NormalizeCost(price decimal.Decimal, intervalDays int) (perMonth, perYear decimal.Decimal, err error) {
	if intervalDays <= 0 {
		return decimal.Zero, decimal.Zero, ErrInvalidInterval
	}
	perDay := price.Div(decimal.NewFromInt(int64(intervalDays)))
	perMonth = RoundCurrency(perDay.Mul(daysPerMonth))
	perYear = RoundCurrency(perDay.Mul(daysPerYear))
	return perMonth, perYear, nil
}
