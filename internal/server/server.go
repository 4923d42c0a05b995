package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
)

// ShutdownTimeout bounds how long in-flight requests get to finish
const ShutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	http *http.Server
}

// New creates a server listening on the configured address
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start blocks serving requests. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("Server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting at most ShutdownTimeout
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
