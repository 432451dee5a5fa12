package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/app"
	"github.com/ternarybob/deckcheck/internal/common"
)

// Server wraps the HTTP server and its route configuration
type Server struct {
	config     *common.Config
	app        *app.App
	logger     arbor.ILogger
	httpServer *http.Server
}

// New creates a server bound to the configured host and port
func New(config *common.Config, application *app.App, logger arbor.ILogger) *Server {
	s := &Server{
		config: config,
		app:    application,
		logger: logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      s.withMiddleware(mux),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	return s
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.httpServer.Addr).
		Msg("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, draining in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
