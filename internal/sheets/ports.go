package sheets

import "context"

// ListingRow is one contract row of the exported listing, already formatted
// for display (two-decimal run-rate figures).
type ListingRow struct {
	Name     string
	Company  string
	PerMonth string
	PerYear  string
}

// ListingWriter mirrors the aggregated contract listing to an external sheet.
type ListingWriter interface {
	// ReplaceListing overwrites the whole exported listing. The export is
	// derived data; replacing it wholesale avoids any row-matching logic.
	ReplaceListing(ctx context.Context, rows []ListingRow, totalPerMonth, totalPerYear string) error
}
