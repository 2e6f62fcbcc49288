// Package server exposes the canvas, the property editor, the backend schema
// editor, code generation, the assistant and the deployment simulator over
// HTTP, and pushes canvas changes to live preview pages over a websocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/blockcraft/internal/assistant"
	"github.com/conneroisu/blockcraft/internal/backend"
	"github.com/conneroisu/blockcraft/internal/canvas"
	"github.com/conneroisu/blockcraft/internal/config"
	"github.com/conneroisu/blockcraft/internal/deploy"
	"github.com/conneroisu/blockcraft/internal/editor"
	"github.com/conneroisu/blockcraft/internal/logging"
	"github.com/conneroisu/blockcraft/internal/registry"
	"github.com/conneroisu/blockcraft/internal/types"
	"github.com/conneroisu/blockcraft/internal/version"
)

// Client is one connected live preview page.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// Server is the blockcraft HTTP server for one editing session.
type Server struct {
	config    *config.Config
	name      string
	nameMutex sync.RWMutex

	store     *canvas.Store
	editor    *editor.Editor
	backend   *backend.Editor
	assistant *assistant.Service
	deployer  *deploy.Simulator
	limiter   *RateLimiter
	logger    logging.Logger

	httpServer  *http.Server
	serverMutex sync.RWMutex

	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn
	hubDone      chan struct{}
	hubOnce      sync.Once
	shutdownOnce sync.Once
}

// UpdateMessage is sent to every live preview page.
type UpdateMessage struct {
	Type      string                `json:"type"`
	Target    string                `json:"target,omitempty"`
	Event     *types.ComponentEvent `json:"event,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// Option configures a Server.
type Option func(*Server)

// WithStore serves an existing canvas.
func WithStore(store *canvas.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithBackend serves an existing backend schema.
func WithBackend(b *backend.Editor) Option {
	return func(s *Server) { s.backend = b }
}

// WithAssistant sets the assistant service.
func WithAssistant(a *assistant.Service) Option {
	return func(s *Server) { s.assistant = a }
}

// WithSimulator sets the deployment simulator.
func WithSimulator(d *deploy.Simulator) Option {
	return func(s *Server) { s.deployer = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server. Anything not supplied through an option is created
// empty; without WithAssistant every assistant route answers 503.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		config:     cfg,
		name:       cfg.Project.Name,
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
		hubDone:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = s.logger.WithComponent("server")
	if s.store == nil {
		s.store = canvas.NewStore()
	}
	if s.backend == nil {
		s.backend = backend.NewEditor(backend.WithLogger(s.logger))
	}
	if s.assistant == nil {
		s.assistant = assistant.NewService(nil, nil, s.logger, assistant.Options{})
	}
	if s.deployer == nil {
		s.deployer = deploy.NewSimulator(
			deploy.WithSuccessRate(cfg.Deploy.SuccessRate),
			deploy.WithTimeScale(cfg.Deploy.TimeScale),
			deploy.WithLogger(s.logger),
		)
	}
	rl := cfg.Server.RateLimit
	s.limiter = NewRateLimiter(&RateLimitConfig{
		Enabled:           rl.Enabled,
		RequestsPerMinute: rl.RequestsPerMinute,
		BurstSize:         rl.Burst,
	}, s.logger)
	s.editor = editor.New(s.store)

	return s
}

// Store returns the canvas the server edits.
func (s *Server) Store() *canvas.Store {
	return s.store
}

// Handler returns the routed and wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/forms/{kind}", s.handleForm)

	mux.HandleFunc("GET /api/components", s.handleListComponents)
	mux.HandleFunc("POST /api/components", s.handleAddComponent)
	mux.HandleFunc("GET /api/components/{id}", s.handleGetComponent)
	mux.HandleFunc("PATCH /api/components/{id}", s.handlePatchComponent)
	mux.HandleFunc("DELETE /api/components/{id}", s.handleDeleteComponent)
	mux.HandleFunc("POST /api/components/{id}/ops", s.handleApplyOps)
	mux.HandleFunc("GET /api/components/{id}/preview", s.handlePreviewComponent)
	mux.HandleFunc("PUT /api/selection", s.handleSelect)
	mux.HandleFunc("DELETE /api/selection", s.handleClearSelection)

	mux.HandleFunc("GET /api/project", s.handleGetProject)
	mux.HandleFunc("PUT /api/project", s.handlePutProject)
	mux.HandleFunc("GET /api/export/static", s.handleExportStatic)
	mux.HandleFunc("GET /api/export/scaffold/{key}", s.handleExportScaffold)
	mux.HandleFunc("GET /api/parity", s.handleParity)

	mux.HandleFunc("GET /api/backend", s.handleGetBackend)
	mux.HandleFunc("POST /api/backend/endpoints", s.handleAddEndpoint)
	mux.HandleFunc("PATCH /api/backend/endpoints/{id}", s.handleUpdateEndpoint)
	mux.HandleFunc("DELETE /api/backend/endpoints/{id}", s.handleDeleteEndpoint)
	mux.HandleFunc("POST /api/backend/models", s.handleAddModel)
	mux.HandleFunc("PATCH /api/backend/models/{id}", s.handleUpdateModel)
	mux.HandleFunc("DELETE /api/backend/models/{id}", s.handleDeleteModel)
	mux.HandleFunc("POST /api/backend/models/{id}/fields", s.handleAddField)
	mux.HandleFunc("PUT /api/backend/models/{id}/fields/{index}", s.handleUpdateField)
	mux.HandleFunc("DELETE /api/backend/models/{id}/fields/{index}", s.handleRemoveField)
	mux.HandleFunc("PATCH /api/backend/auth", s.handleUpdateAuth)
	mux.HandleFunc("PUT /api/backend/auth/methods/{method}", s.handleSetAuthMethod)

	limited := RateLimitMiddleware(s.limiter)
	mux.Handle("POST /api/assistant/chat", limited(http.HandlerFunc(s.handleChat)))
	mux.Handle("POST /api/assistant/analyze-image", limited(http.HandlerFunc(s.handleAnalyzeImage)))
	mux.Handle("POST /api/assistant/generate-code", limited(http.HandlerFunc(s.handleGenerateCode)))
	mux.Handle("POST /api/assistant/generate-backend", limited(http.HandlerFunc(s.handleGenerateBackend)))
	mux.HandleFunc("DELETE /api/assistant/conversation/{id}", s.handleClearConversation)

	mux.HandleFunc("POST /api/deploy", s.handleDeploy)

	return s.addMiddleware(mux)
}

// Start serves until the server is shut down.
func (s *Server) Start(ctx context.Context) error {
	s.startBackground(ctx)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Server listening", "addr", "http://"+addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// startBackground runs the websocket hub and forwards canvas events to it.
func (s *Server) startBackground(ctx context.Context) {
	go s.runWebSocketHub(ctx)

	events := s.store.Watch()
	go func() {
		defer s.store.UnWatch(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				s.broadcastMessage(UpdateMessage{
					Type:      "canvas_changed",
					Target:    event.ID,
					Event:     &event,
					Timestamp: event.Timestamp,
				})
			}
		}
	}()
}

// ApplyConfig takes over the hot-reloadable part of cfg: the project name
// and the deployment settings.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.nameMutex.Lock()
	s.name = cfg.Project.Name
	s.nameMutex.Unlock()

	s.deployer.Configure(
		deploy.WithSuccessRate(cfg.Deploy.SuccessRate),
		deploy.WithTimeScale(cfg.Deploy.TimeScale),
	)

	s.broadcastMessage(UpdateMessage{Type: "full_reload", Timestamp: time.Now()})
	s.logger.Info(context.Background(), "Configuration reloaded", "project", cfg.Project.Name)
}

func (s *Server) projectName() string {
	s.nameMutex.RLock()
	defer s.nameMutex.RUnlock()
	return s.name
}

func (s *Server) setProjectName(name string) {
	s.nameMutex.Lock()
	s.name = name
	s.nameMutex.Unlock()
}

// project snapshots the whole session.
func (s *Server) project() types.Project {
	return types.Project{
		Name:       s.projectName(),
		Components: s.store.Components(),
		Backend:    s.backend.Snapshot(),
	}
}

func (s *Server) broadcastMessage(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error(context.Background(), err, "Failed to marshal message")
		data = []byte(`{"type":"full_reload"}`)
	}

	select {
	case s.broadcast <- data:
	default:
		// Hub is behind; pages will catch up on the next change
	}
}

// Shutdown closes every websocket and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down server")

		s.limiter.Stop()

		s.clientsMutex.Lock()
		for conn, client := range s.clients {
			close(client.send)
			conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		s.clients = make(map[*websocket.Conn]*Client)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.clientsMutex.RLock()
	clients := len(s.clients)
	s.clientsMutex.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.Get().Short(),
		"checks": map[string]any{
			"canvas":    map[string]any{"status": "healthy", "components": s.store.Len()},
			"registry":  map[string]any{"status": "healthy", "kinds": registry.Count()},
			"websocket": map[string]any{"status": "healthy", "clients": clients},
		},
	})
}
