package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vertragsassistent/internal/core"
	"vertragsassistent/internal/services"
)

type contractResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Company  string  `json:"company"`
	Notes    string  `json:"notes"`
	Reminder *string `json:"reminder"`
}

type pricingResponse struct {
	ID                  int64   `json:"id"`
	Start               string  `json:"start"`
	End                 *string `json:"end"`
	PaymentIntervalDays int     `json:"payment_interval_days"`
	Price               string  `json:"price"`
	// Discontinuity flags a gap or overlap between this period and its
	// predecessor in start-date order. Advisory only.
	Discontinuity bool `json:"discontinuity"`
}

type tagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type documentResponse struct {
	ID          int64  `json:"id"`
	ContractID  int64  `json:"contract_id"`
	File        string `json:"file"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Exists      bool   `json:"exists"`
}

type viewRowResponse struct {
	Contract         contractResponse `json:"contract"`
	Tags             []tagResponse    `json:"tags"`
	PerMonth         string           `json:"per_month"`
	PerYear          string           `json:"per_year"`
	HasActivePricing bool             `json:"has_active_pricing"`
	ReminderDue      bool             `json:"reminder_due"`
}

type viewResponse struct {
	Rows          []viewRowResponse `json:"rows"`
	TotalPerMonth string            `json:"total_per_month"`
	TotalPerYear  string            `json:"total_per_year"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newContractResponse(c core.Contract) contractResponse {
	resp := contractResponse{
		ID:      c.ID,
		Name:    c.Name,
		Company: c.Company,
		Notes:   c.Notes,
	}
	if c.Reminder != nil {
		v := c.Reminder.String()
		resp.Reminder = &v
	}
	return resp
}

// newPricingResponses renders the history sorted by start date with the
// advisory discontinuity flags aligned.
func newPricingResponses(periods []core.PricingPeriod) []pricingResponse {
	sorted := core.SortPeriods(periods)
	flags := core.DetectDiscontinuities(sorted)

	out := make([]pricingResponse, len(sorted))
	for i, p := range sorted {
		resp := pricingResponse{
			ID:                  p.ID,
			Start:               p.Start.String(),
			PaymentIntervalDays: p.PaymentIntervalDays,
			Price:               p.Price.String(),
			Discontinuity:       flags[i],
		}
		if p.End != nil {
			v := p.End.String()
			resp.End = &v
		}
		out[i] = resp
	}
	return out
}

func newTagResponses(tags []core.Tag) []tagResponse {
	out := make([]tagResponse, len(tags))
	for i, t := range tags {
		out[i] = tagResponse{ID: t.ID, Name: t.Name, Count: t.Count}
	}
	return out
}

func newDocumentResponse(d services.DocumentInfo) documentResponse {
	return documentResponse{
		ID:          d.ID,
		ContractID:  d.ContractID,
		File:        d.File,
		Description: d.Description,
		Date:        d.Date.String(),
		Exists:      d.Exists,
	}
}

func newViewResponse(view services.View) viewResponse {
	resp := viewResponse{
		Rows:          make([]viewRowResponse, len(view.Rows)),
		TotalPerMonth: core.FormatCurrency(view.TotalPerMonth),
		TotalPerYear:  core.FormatCurrency(view.TotalPerYear),
	}
	for i, row := range view.Rows {
		resp.Rows[i] = viewRowResponse{
			Contract:         newContractResponse(row.Contract),
			Tags:             newTagResponses(row.Tags),
			PerMonth:         core.FormatCurrency(row.PerMonth),
			PerYear:          core.FormatCurrency(row.PerYear),
			HasActivePricing: row.HasActivePricing,
			ReminderDue:      row.ReminderDue,
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain and storage errors onto status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrDuplicateTagName):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyTagName),
		errors.Is(err, core.ErrInvalidInterval),
		errors.Is(err, core.ErrInvalidPrice),
		errors.Is(err, core.ErrInvalidPeriod):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrStorageUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		slog.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
