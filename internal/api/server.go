// Package api provides the local HTTP REST API and WebSocket event hub the
// Vervoer UI shell talks to.
//
// The server loops the shell's auth and profile actions through the remote
// backend, owns the shell-facing view of the session and the alert pipeline,
// and pushes live events (session.changed, nav.redirect, alert.raised,
// vitals.updated, device.connection) over WebSocket.
//
// Lifecycle follows the same pattern as the other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/souhardya/vervoer-core/internal/alerts"
	"github.com/souhardya/vervoer-core/internal/backend"
	"github.com/souhardya/vervoer-core/internal/infrastructure/config"
	"github.com/souhardya/vervoer-core/internal/infrastructure/influxdb"
	"github.com/souhardya/vervoer-core/internal/infrastructure/logging"
	"github.com/souhardya/vervoer-core/internal/nav"
	"github.com/souhardya/vervoer-core/internal/session"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	WS        config.WebSocketConfig
	Logger    *logging.Logger
	Sessions  *session.Store
	Tokens    session.TokenStorage
	Backend   *backend.Client
	Guard     *nav.Guard
	Evaluator *alerts.Evaluator
	AlertLog  *alerts.Log
	History   *influxdb.Client // optional; vitals history disabled when nil
	DeviceID  string
	Hub       *Hub // if set, the server uses this hub instead of creating its own
	Version   string
}

// Server is the local HTTP API server for the Vervoer companion.
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	logger    *logging.Logger
	sessions  *session.Store
	tokens    session.TokenStorage
	backend   *backend.Client
	guard     *nav.Guard
	evaluator *alerts.Evaluator
	alertLog  *alerts.Log
	history   *influxdb.Client
	deviceID  string
	version   string

	server      *http.Server
	hub         *Hub
	externalHub bool
	cancel      context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if deps.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if deps.Evaluator == nil || deps.AlertLog == nil {
		return nil, fmt.Errorf("alert evaluator and log are required")
	}

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		sessions:  deps.Sessions,
		tokens:    deps.Tokens,
		backend:   deps.Backend,
		guard:     deps.Guard,
		evaluator: deps.Evaluator,
		alertLog:  deps.AlertLog,
		history:   deps.History,
		deviceID:  deps.DeviceID,
		version:   deps.Version,
	}

	if deps.Hub != nil {
		s.hub = deps.Hub
		s.externalHub = true
	}

	return s, nil
}

// Hub returns the WebSocket event hub. Available after Start() unless a hub
// was injected at construction.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub, wires session changes and alert entries into
// hub broadcasts, and launches the HTTP listener in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
	}
	if !s.externalHub {
		go s.hub.Run(srvCtx)
	}

	// Session changes fan out to the shell as session.changed events.
	go s.relaySessionChanges(srvCtx)

	// Every alert entry fans out as alert.raised.
	s.evaluator.OnEntry(func(entry alerts.Entry) {
		s.hub.Broadcast(ChannelAlertRaised, entry)
	})

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// relaySessionChanges forwards session snapshots to the hub until ctx ends.
// The raw token never crosses the WebSocket; the shell gets the derived view.
func (s *Server) relaySessionChanges(ctx context.Context) {
	ch := s.sessions.Subscribe()
	defer s.sessions.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			s.hub.Broadcast(ChannelSessionChanged, sessionView(snap))
		}
	}
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
