package server

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/conneroisu/blockcraft/internal/assistant"
	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/validation"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Message = validation.SanitizeInput(req.Message)
	req.SystemPrompt = validation.SanitizeInput(req.SystemPrompt)

	resp, err := s.assistant.Chat(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAnalyzeImage accepts a multipart form with an "image" file and an
// optional "question" field.
func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	limit := s.config.Assistant.Upload.MaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+(1<<20))

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.TooLarge(errors.CodeImageTooLarge, "image is too large"))
			return
		}
		s.writeError(w, r, errors.Wrap(err, errors.KindValidation, errors.CodeNoImage, "Image file is required"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, errors.Validation(errors.CodeNoImage, "Image file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(err, errors.KindValidation, errors.CodeNoImage, "failed to read image"))
		return
	}

	out, err := s.assistant.AnalyzeImage(r.Context(), assistant.Image{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
		Name:     header.Filename,
	}, validation.SanitizeInput(r.FormValue("question")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type generateCodeRequest struct {
	ComponentType string `json:"componentType"`
	Requirements  string `json:"requirements"`
	Framework     string `json:"framework"`
}

func (s *Server) handleGenerateCode(w http.ResponseWriter, r *http.Request) {
	var req generateCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.assistant.GenerateCode(r.Context(),
		req.ComponentType, validation.SanitizeInput(req.Requirements), req.Framework)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type generateBackendRequest struct {
	Description string   `json:"description"`
	TechStack   string   `json:"techStack"`
	Features    []string `json:"features"`
}

func (s *Server) handleGenerateBackend(w http.ResponseWriter, r *http.Request) {
	var req generateBackendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.assistant.GenerateBackend(r.Context(),
		validation.SanitizeInput(req.Description), req.TechStack, req.Features)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.assistant.ClearConversation(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Conversation cleared"})
}
