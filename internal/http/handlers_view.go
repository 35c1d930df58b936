package http

import (
	"net/http"
)

// handleView serves the aggregated contract listing: filtered by the selected
// tags, sorted by (name, company), with normalized run-rates and totals.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	params, err := ParseViewParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.aggregator.AggregateView(r.Context(), params.Today, params.Selected, params.Mode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newViewResponse(view))
}

// handleValidatePricing runs the advisory discontinuity check over a pricing
// history without touching storage.
func (s *Server) handleValidatePricing(w http.ResponseWriter, r *http.Request) {
	var req PricingHistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	periods, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Pricing []pricingResponse `json:"pricing"`
	}{Pricing: newPricingResponses(periods)})
}
