package core

import "sort"

// SortPeriods returns a copy of periods ordered ascending by start date.
// The input order is preserved for equal start dates.
func SortPeriods(periods []PricingPeriod) []PricingPeriod {
	out := append([]PricingPeriod(nil), periods...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start.Time)
	})
	return out
}

// IsActiveOn reports whether the period covers today:
// start <= today and (no end date or today <= end).
func (p PricingPeriod) IsActiveOn(today Date) bool {
	return today.OnOrAfter(p.Start) && (p.End == nil || today.OnOrBefore(*p.End))
}

// ActivePeriod returns the pricing period in effect on today, or nil when none
// covers it. When overlapping periods both cover today, the one with the
// latest start date wins (the most recently started pricing is considered the
// current one).
func ActivePeriod(periods []PricingPeriod, today Date) *PricingPeriod {
	sorted := SortPeriods(periods)
	var active *PricingPeriod
	for i := range sorted {
		if sorted[i].IsActiveOn(today) {
			active = &sorted[i]
		}
	}
	if active == nil {
		return nil
	}
	p := *active
	return &p
}

// DetectDiscontinuities flags gaps and overlaps in a pricing history. The
// result is aligned with SortPeriods(periods): entry i is true when period i
// does not start exactly one day after its predecessor ends, or when the
// predecessor is open-ended (an open-ended period followed by another period
// is anomalous). The first period is never flagged.
//
// The flags are advisory and never block a save; malformed histories must
// remain viewable.
func DetectDiscontinuities(periods []PricingPeriod) []bool {
	sorted := SortPeriods(periods)
	flags := make([]bool, len(sorted))
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		if prev.End == nil {
			flags[i] = true
			continue
		}
		if !prev.End.AddDays(1).Equal(sorted[i].Start.Time) {
			flags[i] = true
		}
	}
	return flags
}

// ValidatePricingStrict is the opt-in strict mode: it rejects periods whose
// end date lies before their start date. The default read path stays
// permissive so existing malformed data remains accessible.
func ValidatePricingStrict(periods []PricingPeriod) error {
	for _, p := range periods {
		if p.End != nil && p.End.Before(p.Start.Time) {
			return ErrInvalidPeriod
		}
	}
	return nil
}
