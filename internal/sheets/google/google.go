// Package google exports the contract listing to a Google spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	ports "vertragsassistent/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.ListingWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Vertraege").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Vertraege"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	opts := []goption.ClientOption{goption.WithScopes(gsheet.SpreadsheetsScope)}

	switch {
	case strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")) != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))))
	case strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")) != "":
		opts = append(opts, goption.WithCredentialsFile(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")))
	default:
		// fall through to application default credentials
	}

	return gsheet.NewService(ctx, opts...)
}

// ReplaceListing clears the sheet and writes header, rows and a totals line.
func (c *Client) ReplaceListing(ctx context.Context, rows []ports.ListingRow, totalPerMonth, totalPerYear string) error {
	clearRange := fmt.Sprintf("%s!A:D", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear listing range: %w", err)
	}

	values := [][]any{
		{"Vertrag", "Anbieter", "Preis / Monat", "Preis / Jahr"},
	}
	for _, row := range rows {
		values = append(values, []any{row.Name, row.Company, row.PerMonth, row.PerYear})
	}
	values = append(values, []any{"Gesamt", "", totalPerMonth, totalPerYear})

	vr := &gsheet.ValueRange{Values: values}
	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}
