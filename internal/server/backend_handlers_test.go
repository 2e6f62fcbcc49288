package server

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendEndpoints(t *testing.T) {
	_, h := setupTestServer(t)

	w := doRequest(t, h, http.MethodPost, "/api/backend/endpoints", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	ep := decodeBody(t, w)
	id := ep["id"].(string)
	assert.Equal(t, "/api/new-endpoint", ep["path"])
	assert.Equal(t, "GET", ep["method"])

	w = doRequest(t, h, http.MethodPatch, "/api/backend/endpoints/"+id, map[string]any{
		"path":   "/api/users",
		"method": "POST",
	})
	require.Equal(t, http.StatusOK, w.Code)
	endpoints := decodeBody(t, w)["endpoints"].([]any)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/api/users", endpoints[0].(map[string]any)["path"])
	assert.Equal(t, "POST", endpoints[0].(map[string]any)["method"])

	w = doRequest(t, h, http.MethodPatch, "/api/backend/endpoints/missing", map[string]any{"path": "/x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_ENDPOINT_NOT_FOUND", decodeBody(t, w)["code"])

	w = doRequest(t, h, http.MethodDelete, "/api/backend/endpoints/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(t, h, http.MethodDelete, "/api/backend/endpoints/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackendModels(t *testing.T) {
	_, h := setupTestServer(t)

	w := doRequest(t, h, http.MethodPost, "/api/backend/models", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doRequest(t, h, http.MethodPatch, "/api/backend/models/"+id, map[string]any{"name": "User"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodPost, "/api/backend/models/"+id+"/fields", map[string]any{
		"name": "email", "type": "string", "required": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	model := decodeBody(t, w)["models"].([]any)[0].(map[string]any)
	assert.Equal(t, "User", model["name"])
	fields := model["fields"].([]any)
	last := len(fields) - 1
	assert.Equal(t, "email", fields[last].(map[string]any)["name"])

	t.Run("update field", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPut, "/api/backend/models/"+id+"/fields/0", map[string]any{
			"name": "uid", "type": "string", "required": true, "primary": true,
		})
		require.Equal(t, http.StatusOK, w.Code)
		fields := decodeBody(t, w)["models"].([]any)[0].(map[string]any)["fields"].([]any)
		assert.Equal(t, "uid", fields[0].(map[string]any)["name"])
	})

	t.Run("non-integer index", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPut, "/api/backend/models/"+id+"/fields/first", map[string]any{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out of range index changes nothing", func(t *testing.T) {
		w := doRequest(t, h, http.MethodDelete, "/api/backend/models/"+id+"/fields/99", nil)
		require.Equal(t, http.StatusOK, w.Code)
		fields := decodeBody(t, w)["models"].([]any)[0].(map[string]any)["fields"].([]any)
		assert.Len(t, fields, last+1)
	})

	t.Run("remove field", func(t *testing.T) {
		w := doRequest(t, h, http.MethodDelete, "/api/backend/models/"+id+"/fields/"+strconv.Itoa(last), nil)
		require.Equal(t, http.StatusOK, w.Code)
		fields := decodeBody(t, w)["models"].([]any)[0].(map[string]any)["fields"].([]any)
		assert.Len(t, fields, last)
	})

	w = doRequest(t, h, http.MethodPost, "/api/backend/models/missing/fields", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_MODEL_NOT_FOUND", decodeBody(t, w)["code"])

	w = doRequest(t, h, http.MethodDelete, "/api/backend/models/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBackendAuth(t *testing.T) {
	_, h := setupTestServer(t)

	w := doRequest(t, h, http.MethodPatch, "/api/backend/auth", map[string]any{"enabled": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["enabled"])

	for range 2 {
		w = doRequest(t, h, http.MethodPut, "/api/backend/auth/methods/oauth", map[string]any{"checked": true})
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, []any{"oauth"}, decodeBody(t, w)["methods"])

	w = doRequest(t, h, http.MethodPut, "/api/backend/auth/methods/oauth", map[string]any{"checked": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["methods"])

	w = doRequest(t, h, http.MethodGet, "/api/backend", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "auth")
}
