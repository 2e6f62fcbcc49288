package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/blockcraft/internal/editor"
	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/registry"
	"github.com/conneroisu/blockcraft/internal/renderer"
	"github.com/conneroisu/blockcraft/internal/types"
)

// handleIndex serves the live canvas preview.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	components := s.store.Components()
	selected := s.store.SelectedID()
	title := s.projectName()

	page := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body strings.Builder
		if err := renderer.RenderCanvas(components, selected).Render(ctx, &body); err != nil {
			return err
		}
		_, err := io.WriteString(w, renderer.RenderPageWithLayout(title, body.String()))
		return err
	})
	templ.Handler(page).ServeHTTP(w, r)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.Catalog())
}

// FormResponse describes the property form of one kind.
type FormResponse struct {
	Kind    types.Kind         `json:"kind"`
	Heading string             `json:"heading"`
	Fields  []editor.FieldSpec `json:"fields"`
	Message string             `json:"message,omitempty"`
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	kind := types.Kind(r.PathValue("kind"))
	resp := FormResponse{
		Kind:    kind,
		Heading: editor.Heading(kind),
		Fields:  editor.Form(kind),
	}
	if len(resp.Fields) == 0 {
		resp.Fields = []editor.FieldSpec{}
		resp.Message = editor.Unavailable(kind)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CanvasResponse is the whole canvas.
type CanvasResponse struct {
	Components []types.ComponentInstance `json:"components"`
	SelectedID string                    `json:"selectedId,omitempty"`
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CanvasResponse{
		Components: s.store.Components(),
		SelectedID: s.store.SelectedID(),
	})
}

type addComponentRequest struct {
	Type types.Kind `json:"type"`
}

// handleAddComponent appends a component. Unknown kinds are accepted.
func (s *Server) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	var req addComponentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(string(req.Type)) == "" {
		s.writeError(w, r, errors.Validation(errors.CodeInvalidRequest, "type is required"))
		return
	}

	writeJSON(w, http.StatusCreated, s.store.Add(req.Type))
}

func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, errors.ErrComponentNotFound(r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// handlePatchComponent shallow-merges the body into the component's props.
func (s *Server) handlePatchComponent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var partial map[string]any
	if err := decodeJSON(w, r, &partial); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.store.Patch(id, partial) {
		s.writeError(w, r, errors.ErrComponentNotFound(id))
		return
	}
	s.writeComponent(w, r, id)
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Remove(id) {
		s.writeError(w, r, errors.ErrComponentNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type opsRequest struct {
	Ops []editor.Op `json:"ops"`
}

// handleApplyOps runs editing primitives against one component. A malformed
// op rejects the whole batch.
func (s *Server) handleApplyOps(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req opsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	found, err := s.editor.Apply(id, req.Ops...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		s.writeError(w, r, errors.ErrComponentNotFound(id))
		return
	}
	s.writeComponent(w, r, id)
}

func (s *Server) handlePreviewComponent(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, errors.ErrComponentNotFound(r.PathValue("id")))
		return
	}
	templ.Handler(renderer.RenderPreview(inst)).ServeHTTP(w, r)
}

type selectRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.store.Select(req.ID) {
		s.writeError(w, r, errors.ErrComponentNotFound(req.ID))
		return
	}
	s.writeComponent(w, r, req.ID)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.store.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeComponent(w http.ResponseWriter, r *http.Request, id string) {
	inst, ok := s.store.Get(id)
	if !ok {
		// Removed concurrently
		s.writeError(w, r, errors.ErrComponentNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, inst)
}
