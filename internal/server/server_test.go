package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/blockcraft/internal/config"
	"github.com/conneroisu/blockcraft/internal/deploy"
	"github.com/conneroisu/blockcraft/internal/types"
)

func noSleep(context.Context, time.Duration) error { return nil }

// setupTestServer returns a server whose deployments finish instantly.
func setupTestServer(t *testing.T, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	cfg := config.Defaults()
	return newServerWithConfig(t, cfg, opts...)
}

func newServerWithConfig(t *testing.T, cfg *config.Config, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	sim := deploy.NewSimulator(deploy.WithSleep(noSleep), deploy.WithSuccessRate(1))
	srv := New(cfg, append([]Option{WithSimulator(sim)}, opts...)...)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, srv.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewFillsCollaborators(t *testing.T) {
	srv, _ := setupTestServer(t)

	assert.NotNil(t, srv.Store())
	assert.NotNil(t, srv.backend)
	assert.NotNil(t, srv.assistant)
	assert.NotNil(t, srv.limiter)
	assert.Equal(t, "My Website", srv.projectName())
}

func TestHealth(t *testing.T) {
	srv, h := setupTestServer(t)
	srv.Store().Add(types.KindHero)

	w := doRequest(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["version"])
	checks := body["checks"].(map[string]any)
	assert.EqualValues(t, 1, checks["canvas"].(map[string]any)["components"])
	assert.EqualValues(t, len(types.Kinds), checks["registry"].(map[string]any)["kinds"])
}

func TestApplyConfig(t *testing.T) {
	srv, h := setupTestServer(t)

	cfg := config.Defaults()
	cfg.Project.Name = "Renamed Site"
	srv.ApplyConfig(cfg)

	w := doRequest(t, h, http.MethodGet, "/api/project", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed Site", decodeBody(t, w)["name"])

	select {
	case msg := <-srv.broadcast:
		assert.Contains(t, string(msg), `"full_reload"`)
	default:
		t.Fatal("expected a full_reload broadcast")
	}
}

func TestBroadcastMessageNeverBlocks(t *testing.T) {
	srv, _ := setupTestServer(t)

	done := make(chan struct{})
	go func() {
		for i := range cap(srv.broadcast) + 5 {
			srv.broadcastMessage(UpdateMessage{Type: fmt.Sprintf("m%d", i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcastMessage blocked on a full hub")
	}
	assert.Len(t, srv.broadcast, cap(srv.broadcast))
}

func TestCORS(t *testing.T) {
	t.Run("preflight from allowed origin", func(t *testing.T) {
		_, h := setupTestServer(t)

		req := httptest.NewRequest(http.MethodOptions, "/api/components", nil)
		req.Header.Set("Origin", "http://localhost:8080")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("wildcard only in development", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Server.Environment = "production"
		_, h := newServerWithConfig(t, cfg)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

		_, devHandler := setupTestServer(t)
		w = httptest.NewRecorder()
		devHandler.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestShutdownIsIdempotent(t *testing.T) {
	srv := New(config.Defaults())
	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))
}
