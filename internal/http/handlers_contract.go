package http

import (
	"net/http"
)

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := s.lister.ListContracts(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]contractResponse, len(contracts))
	for i, c := range contracts {
		out[i] = newContractResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	s.saveContract(w, r, 0)
}

func (s *Server) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.saveContract(w, r, id)
}

// saveContract handles both create and update. The submitted pricing history
// replaces the stored one.
func (s *Server) saveContract(w http.ResponseWriter, r *http.Request, id int64) {
	var req ContractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	contract, periods, err := req.ToDomain(id)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.contracts.SaveContract(r.Context(), contract, periods)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, newContractResponse(saved))
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	contract, err := s.contracts.GetContract(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	periods, err := s.pricing.ListPricing(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Contract contractResponse  `json:"contract"`
		Pricing  []pricingResponse `json:"pricing"`
	}{
		Contract: newContractResponse(contract),
		Pricing:  newPricingResponses(periods),
	})
}

func (s *Server) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.contracts.DeleteContract(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPricing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// 404 for unknown contracts, empty history otherwise.
	if _, err := s.contracts.GetContract(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	periods, err := s.pricing.ListPricing(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPricingResponses(periods))
}
