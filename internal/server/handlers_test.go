package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/blockcraft/internal/types"
)

func addComponent(t *testing.T, h http.Handler, kind types.Kind) string {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/components", map[string]any{"type": kind})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHandleIndex(t *testing.T) {
	srv, h := setupTestServer(t)
	srv.Store().Add(types.KindHero)

	w := doRequest(t, h, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "<title>My Website - Blockcraft Preview</title>")
	assert.Contains(t, body, "Welcome to Our Website")
}

func TestHandleIndexUnknownPath(t *testing.T) {
	_, h := setupTestServer(t)
	w := doRequest(t, h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCatalog(t *testing.T) {
	_, h := setupTestServer(t)

	w := doRequest(t, h, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hero"`)
	assert.Contains(t, w.Body.String(), `"footer"`)
}

func TestHandleForm(t *testing.T) {
	_, h := setupTestServer(t)

	tests := []struct {
		kind        string
		wantFields  bool
		wantMessage string
	}{
		{"hero", true, ""},
		{"pricing", true, ""},
		{"carousel", false, "Properties for carousel component are not yet available."},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := doRequest(t, h, http.MethodGet, "/api/forms/"+tt.kind, nil)
			require.Equal(t, http.StatusOK, w.Code)

			body := decodeBody(t, w)
			fields := body["fields"].([]any)
			assert.Equal(t, tt.wantFields, len(fields) > 0)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}
		})
	}
}

func TestComponentLifecycle(t *testing.T) {
	_, h := setupTestServer(t)

	id := addComponent(t, h, types.KindHero)

	w := doRequest(t, h, http.MethodGet, "/api/components/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	props := decodeBody(t, w)["props"].(map[string]any)
	assert.Equal(t, "Welcome to Our Website", props["title"])

	w = doRequest(t, h, http.MethodPatch, "/api/components/"+id, map[string]any{"title": "Hello"})
	require.Equal(t, http.StatusOK, w.Code)
	props = decodeBody(t, w)["props"].(map[string]any)
	assert.Equal(t, "Hello", props["title"])
	assert.Equal(t, "Get Started", props["buttonText"])

	w = doRequest(t, h, http.MethodGet, "/api/components", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["components"], 1)

	w = doRequest(t, h, http.MethodDelete, "/api/components/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/api/components/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_COMPONENT_NOT_FOUND", decodeBody(t, w)["code"])
}

func TestAddComponent(t *testing.T) {
	_, h := setupTestServer(t)

	t.Run("unknown kind is accepted", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/components", map[string]any{"type": "carousel"})
		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "carousel", body["type"])
		assert.Empty(t, body["props"])
	})

	t.Run("missing type", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/components", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/components", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_REQUEST", decodeBody(t, w)["code"])
	})
}

func TestPatchMissingComponent(t *testing.T) {
	_, h := setupTestServer(t)
	w := doRequest(t, h, http.MethodPatch, "/api/components/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyOps(t *testing.T) {
	_, h := setupTestServer(t)
	id := addComponent(t, h, types.KindFeatures)

	t.Run("batch", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/components/"+id+"/ops", map[string]any{
			"ops": []map[string]any{
				{"op": "set", "key": "title", "value": "Why us"},
				{"op": "arrayRemove", "key": "items", "index": 0},
				{"op": "arrayAdd", "key": "items", "value": map[string]any{"title": "New", "description": "d", "icon": "star"}},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		props := decodeBody(t, w)["props"].(map[string]any)
		assert.Equal(t, "Why us", props["title"])
		items := props["items"].([]any)
		require.Len(t, items, 3)
		assert.Equal(t, "Secure", items[0].(map[string]any)["title"])
		assert.Equal(t, "New", items[2].(map[string]any)["title"])
	})

	t.Run("unknown op rejects the batch", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/components/"+id+"/ops", map[string]any{
			"ops": []map[string]any{
				{"op": "set", "key": "title", "value": "ignored"},
				{"op": "explode", "key": "title"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_UNKNOWN_OP", decodeBody(t, w)["code"])

		w = doRequest(t, h, http.MethodGet, "/api/components/"+id, nil)
		assert.Equal(t, "Why us", decodeBody(t, w)["props"].(map[string]any)["title"])
	})

	t.Run("checklist toggle", func(t *testing.T) {
		formID := addComponent(t, h, types.KindForm)
		w := doRequest(t, h, http.MethodPost, "/api/components/"+formID+"/ops", map[string]any{
			"ops": []map[string]any{
				{"op": "toggle", "key": "fields", "value": "phone", "checked": true},
				{"op": "toggle", "key": "fields", "value": "message", "checked": false},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		props := decodeBody(t, w)["props"].(map[string]any)
		assert.Equal(t, []any{"name", "email", "phone"}, props["fields"])
	})

	t.Run("missing component", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/components/missing/ops", map[string]any{
			"ops": []map[string]any{{"op": "set", "key": "title", "value": "x"}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPreviewComponent(t *testing.T) {
	_, h := setupTestServer(t)
	id := addComponent(t, h, types.KindCTA)

	w := doRequest(t, h, http.MethodGet, "/api/components/"+id+"/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "bg-blue-600")

	w = doRequest(t, h, http.MethodGet, "/api/components/missing/preview", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelection(t *testing.T) {
	srv, h := setupTestServer(t)
	id := addComponent(t, h, types.KindNavbar)

	w := doRequest(t, h, http.MethodPut, "/api/selection", map[string]any{"id": id})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, srv.Store().SelectedID())

	w = doRequest(t, h, http.MethodGet, "/api/components", nil)
	assert.Equal(t, id, decodeBody(t, w)["selectedId"])

	w = doRequest(t, h, http.MethodPut, "/api/selection", map[string]any{"id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, id, srv.Store().SelectedID())

	w = doRequest(t, h, http.MethodDelete, "/api/selection", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, srv.Store().SelectedID())
}
