package server

import (
	"net/http"
	"strconv"

	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/types"
)

func (s *Server) handleGetBackend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Snapshot())
}

func (s *Server) handleAddEndpoint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.backend.AddEndpoint())
}

func (s *Server) handleUpdateEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var partial map[string]any
	if err := decodeJSON(w, r, &partial); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.backend.UpdateEndpoint(id, partial) {
		s.writeError(w, r, endpointNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, s.backend.Snapshot())
}

func (s *Server) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.backend.DeleteEndpoint(id) {
		s.writeError(w, r, endpointNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.backend.AddModel())
}

func (s *Server) handleUpdateModel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var partial map[string]any
	if err := decodeJSON(w, r, &partial); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.backend.UpdateModel(id, partial) {
		s.writeError(w, r, modelNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, s.backend.Snapshot())
}

func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.backend.DeleteModel(id) {
		s.writeError(w, r, modelNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var field types.Field
	if err := decodeJSON(w, r, &field); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.backend.AddField(id, field) {
		s.writeError(w, r, modelNotFound(id))
		return
	}
	writeJSON(w, http.StatusCreated, s.backend.Snapshot())
}

// handleUpdateField replaces one field. An out-of-range index changes
// nothing.
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := fieldIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var field types.Field
	if err := decodeJSON(w, r, &field); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.backend.UpdateField(id, index, field) {
		s.writeError(w, r, modelNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, s.backend.Snapshot())
}

func (s *Server) handleRemoveField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := fieldIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.backend.RemoveField(id, index) {
		s.writeError(w, r, modelNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, s.backend.Snapshot())
}

func (s *Server) handleUpdateAuth(w http.ResponseWriter, r *http.Request) {
	var partial map[string]any
	if err := decodeJSON(w, r, &partial); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.backend.UpdateAuth(partial)
	writeJSON(w, http.StatusOK, s.backend.Snapshot().Auth)
}

type authMethodRequest struct {
	Checked bool `json:"checked"`
}

func (s *Server) handleSetAuthMethod(w http.ResponseWriter, r *http.Request) {
	var req authMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.backend.SetAuthMethod(r.PathValue("method"), req.Checked)
	writeJSON(w, http.StatusOK, s.backend.Snapshot().Auth)
}

func fieldIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, errors.Validation(errors.CodeInvalidRequest, "field index must be an integer").
			WithContext("index", r.PathValue("index"))
	}
	return index, nil
}

func endpointNotFound(id string) *errors.Error {
	return errors.NotFound(errors.CodeEndpointNotFound, "endpoint not found: "+id).WithContext("id", id)
}

func modelNotFound(id string) *errors.Error {
	return errors.NotFound(errors.CodeModelNotFound, "model not found: "+id).WithContext("id", id)
}
