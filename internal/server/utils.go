package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/conneroisu/blockcraft/internal/errors"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), err, "Request failed", "path", r.URL.Path)
	} else {
		s.logger.Debug(r.Context(), "Request rejected", "path", r.URL.Path, "error", err.Error())
	}
	writeJSON(w, status, errors.Payload(err))
}

// decodeJSON reads the request body into v. An empty body leaves v as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(err, errors.KindValidation, errors.CodeInvalidRequest, "invalid JSON body")
	}
	return nil
}
