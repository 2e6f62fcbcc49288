package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/conneroisu/blockcraft/internal/codegen"
	"github.com/conneroisu/blockcraft/internal/deploy"
	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/parity"
	"github.com/conneroisu/blockcraft/internal/types"
)

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.project())
}

type projectRequest struct {
	Name    *string              `json:"name"`
	Backend *types.BackendSchema `json:"backend"`
}

// handlePutProject renames the project and optionally replaces the backend
// schema.
func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if req.Name != nil {
		s.setProjectName(*req.Name)
	}
	if req.Backend != nil {
		s.backend.Load(*req.Backend)
	}
	writeJSON(w, http.StatusOK, s.project())
}

func (s *Server) handleExportStatic(w http.ResponseWriter, r *http.Request) {
	project := s.project()
	doc := codegen.StaticDocument(project, project.Components)
	writeDownload(w, codegen.FileName(codegen.TargetStatic, ""), doc)
}

func (s *Server) handleExportScaffold(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	name := codegen.FileName(codegen.TargetScaffold, key)
	if name == "" {
		s.writeError(w, r, errors.NotFound(errors.CodeUnknownTarget, "unknown scaffold file: "+key).
			WithContext("key", key))
		return
	}
	writeDownload(w, name, codegen.Scaffold(s.project(), key))
}

func writeDownload(w http.ResponseWriter, fileName, content string) {
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	_, _ = w.Write([]byte(content))
}

// handleParity compares preview and emitted markup for every component.
func (s *Server) handleParity(w http.ResponseWriter, r *http.Request) {
	reports, err := parity.CompareAll(r.Context(), s.store.Components())
	if err != nil {
		s.writeError(w, r, errors.Wrap(err, errors.KindInternal, errors.CodeInternal, "parity check failed"))
		return
	}

	ok := true
	for _, rep := range reports {
		ok = ok && rep.OK()
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "reports": reports})
}

// DeployMessage is one line of the deployment stream.
type DeployMessage struct {
	Type     string           `json:"type"`
	Progress *deploy.Progress `json:"progress,omitempty"`
	Result   *deploy.Result   `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// handleDeploy runs the simulator and streams newline-delimited JSON
// progress followed by the result.
func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	project := s.project()
	if strings.TrimSpace(project.Name) == "" {
		s.writeError(w, r, errors.Validation(errors.CodeInvalidRequest, "project name is required"))
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	send := func(msg DeployMessage) {
		_ = enc.Encode(msg)
		_ = rc.Flush()
	}

	result, err := s.deployer.Run(r.Context(), project, func(p deploy.Progress) {
		send(DeployMessage{Type: "progress", Progress: &p})
	})
	if err != nil {
		send(DeployMessage{Type: "error", Error: err.Error()})
		return
	}
	send(DeployMessage{Type: "result", Result: &result})
}
