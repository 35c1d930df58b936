package http

import (
	"net/http"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.ListTags(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTagResponses(tags))
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := s.tags.CreateTag(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tagResponse{ID: tag.ID, Name: tag.Name, Count: tag.Count})
}

func (s *Server) handleRenameTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tags.RenameTag(r.Context(), id, req.Name); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteTag removes a tag from the catalogue; its contract associations
// go with it, the contracts themselves are untouched.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tags.DeleteTag(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignTag(w http.ResponseWriter, r *http.Request) {
	contractID, tagID, ok := s.tagPairIDs(w, r)
	if !ok {
		return
	}
	if err := s.tags.AssignTag(r.Context(), contractID, tagID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnassignTag(w http.ResponseWriter, r *http.Request) {
	contractID, tagID, ok := s.tagPairIDs(w, r)
	if !ok {
		return
	}
	if err := s.tags.UnassignTag(r.Context(), contractID, tagID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) tagPairIDs(w http.ResponseWriter, r *http.Request) (contractID, tagID int64, ok bool) {
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	tagID, err = pathID(r, "tagID")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return contractID, tagID, true
}
