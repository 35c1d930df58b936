package http

import (
	"net/url"
	"testing"

	"vertragsassistent/internal/core"
)

func TestParseViewParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantErr  bool
		wantMode core.TagMode
		wantTags int
		wantDate string
	}{
		{name: "empty defaults to AND", query: "", wantMode: core.TagModeAnd},
		{name: "explicit date", query: "date=2026-03-15", wantMode: core.TagModeAnd, wantDate: "2026-03-15"},
		{name: "or mode", query: "mode=or", wantMode: core.TagModeOr},
		{name: "tag list", query: "tags=1,2,3", wantMode: core.TagModeAnd, wantTags: 3},
		{name: "tag list with spaces", query: "tags=1,+2", wantMode: core.TagModeAnd, wantTags: 2},
		{name: "invalid date", query: "date=15.03.2026", wantErr: true},
		{name: "invalid mode", query: "mode=xor", wantErr: true},
		{name: "invalid tag id", query: "tags=1,abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			params, err := ParseViewParams(q)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseViewParams(%q) error = nil, want error", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseViewParams(%q) error = %v", tt.query, err)
			}
			if params.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", params.Mode, tt.wantMode)
			}
			if len(params.Selected) != tt.wantTags {
				t.Errorf("got %d selected tags, want %d", len(params.Selected), tt.wantTags)
			}
			if tt.wantDate != "" && params.Today.String() != tt.wantDate {
				t.Errorf("date = %s, want %s", params.Today, tt.wantDate)
			}
		})
	}
}

func TestContractRequestToDomain(t *testing.T) {
	req := ContractRequest{
		Name:     "  Internet  ",
		Company:  "Telekom",
		Reminder: "2026-12-01",
		Pricing: []PricingRequest{
			{Start: "2025-01-01", End: "2025-12-31", PaymentIntervalDays: 30, Price: "29,99"},
		},
	}

	contract, periods, err := req.ToDomain(7)
	if err != nil {
		t.Fatalf("ToDomain() error = %v", err)
	}
	if contract.ID != 7 || contract.Name != "Internet" {
		t.Errorf("contract = %+v", contract)
	}
	if contract.Reminder == nil || contract.Reminder.String() != "2026-12-01" {
		t.Errorf("reminder = %v", contract.Reminder)
	}
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	if periods[0].ContractID != 7 {
		t.Errorf("period contract id = %d, want 7", periods[0].ContractID)
	}
	if periods[0].Price.String() != "29.99" {
		t.Errorf("price = %s, want 29.99", periods[0].Price)
	}
	if periods[0].End == nil || periods[0].End.String() != "2025-12-31" {
		t.Errorf("end = %v", periods[0].End)
	}
}

func TestContractRequestToDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		req  ContractRequest
	}{
		{
			name: "bad reminder",
			req:  ContractRequest{Name: "x", Reminder: "01.12.2026"},
		},
		{
			name: "bad period start",
			req: ContractRequest{Name: "x", Pricing: []PricingRequest{
				{Start: "not-a-date", PaymentIntervalDays: 30, Price: "1"},
			}},
		},
		{
			name: "bad price",
			req: ContractRequest{Name: "x", Pricing: []PricingRequest{
				{Start: "2026-01-01", PaymentIntervalDays: 30, Price: "abc"},
			}},
		},
		{
			name: "negative price",
			req: ContractRequest{Name: "x", Pricing: []PricingRequest{
				{Start: "2026-01-01", PaymentIntervalDays: 30, Price: "-1"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.req.ToDomain(0); err == nil {
				t.Errorf("ToDomain() error = nil, want error")
			}
		})
	}
}
