package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"vertragsassistent/internal/core"
)

// ViewRow is one contract in the aggregated listing.
type ViewRow struct {
	Contract core.Contract
	Tags     []core.Tag
	// PerMonth and PerYear are the normalized run-rate figures, already
	// rounded to two decimals.
	PerMonth decimal.Decimal
	PerYear  decimal.Decimal
	// HasActivePricing is false when the contract has no period covering
	// today; such rows still appear with a zero run-rate.
	HasActivePricing bool
	// ReminderDue drives the highlight in the presentation layer.
	ReminderDue bool
}

// View is the presentation-ready contract listing with totals.
type View struct {
	Rows          []ViewRow
	TotalPerMonth decimal.Decimal
	TotalPerYear  decimal.Decimal
}

// Aggregator builds the filtered, sorted, totaled contract listing. It is a
// pure function over the storage snapshot: identical inputs without an
// intervening mutation yield identical output.
type Aggregator struct {
	storage ViewStorage
}

func NewAggregator(storage ViewStorage) *Aggregator {
	return &Aggregator{storage: storage}
}

// AggregateView returns the contract listing for today, filtered by the
// selected tags combined with mode.
//
// Contracts are ordered by (name, company), ascending, case-sensitive.
// Contracts without an active pricing period contribute a zero row (price 0,
// interval 365). Totals accumulate the rounded per-month/per-year figures
// with exact decimal addition, matching a column sum over the displayed
// values.
func (a *Aggregator) AggregateView(ctx context.Context, today core.Date, selected []core.Tag, mode core.TagMode) (View, error) {
	contracts, err := a.storage.ListContracts(ctx)
	if err != nil {
		return View{}, fmt.Errorf("fetch contracts: %w", err)
	}

	sort.SliceStable(contracts, func(i, j int) bool {
		if contracts[i].Name != contracts[j].Name {
			return contracts[i].Name < contracts[j].Name
		}
		return contracts[i].Company < contracts[j].Company
	})

	view := View{
		TotalPerMonth: decimal.Zero,
		TotalPerYear:  decimal.Zero,
	}

	for _, contract := range contracts {
		tags, err := a.storage.TagsForContract(ctx, contract.ID)
		if err != nil {
			return View{}, fmt.Errorf("fetch tags for contract %d: %w", contract.ID, err)
		}
		if !core.MatchTags(tags, selected, mode) {
			continue
		}

		periods, err := a.storage.ListPricing(ctx, contract.ID)
		if err != nil {
			return View{}, fmt.Errorf("fetch pricing for contract %d: %w", contract.ID, err)
		}

		price := decimal.Zero
		interval := core.DefaultIntervalDays
		active := core.ActivePeriod(periods, today)
		if active != nil {
			price = active.Price
			interval = active.PaymentIntervalDays
		}

		perMonth, perYear, err := core.NormalizeCost(price, interval)
		if err != nil {
			return View{}, fmt.Errorf("normalize cost for contract %d: %w", contract.ID, err)
		}

		view.Rows = append(view.Rows, ViewRow{
			Contract:         contract,
			Tags:             tags,
			PerMonth:         perMonth,
			PerYear:          perYear,
			HasActivePricing: active != nil,
			ReminderDue:      contract.ReminderDue(today),
		})
		view.TotalPerMonth = view.TotalPerMonth.Add(perMonth)
		view.TotalPerYear = view.TotalPerYear.Add(perYear)
	}

	view.TotalPerMonth = core.RoundCurrency(view.TotalPerMonth)
	view.TotalPerYear = core.RoundCurrency(view.TotalPerYear)
	return view, nil
}

// ValidatePricingHistory returns the advisory discontinuity flags for a
// contract's pricing history, aligned with the history sorted by start date.
func (a *Aggregator) ValidatePricingHistory(periods []core.PricingPeriod) []bool {
	return core.DetectDiscontinuities(periods)
}
