package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"
)

// Server is the local SenderPlus submission service.
// It owns the package store and the directory photos are saved under.
type Server struct {
	// store persists submitted packages.
	store *PackageStore

	// dataDir is the root directory for the database and photos.
	dataDir string

	// addr is the listen address in "host:port" format.
	addr string

	// logger is used for request and lifecycle logging.
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the listen address.
// Default is "localhost:8000" if not specified.
func WithAddress(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithServerLogger sets a custom logger.
// Default is slog.Default() if not specified.
func WithServerLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a Server backed by a package store under dataDir.
// The store (and dataDir itself) is created if it does not exist.
func NewServer(dataDir string, opts ...Option) (*Server, error) {
	store, err := OpenStore(dataDir, DefaultStoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open package store: %w", err)
	}

	s := &Server{
		store:   store,
		dataDir: dataDir,
		addr:    "localhost:8000",
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close releases the package store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Handler returns the HTTP handler with all routes registered.
// Exposed separately from Run so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submit-package", s.handleSubmit)
	mux.HandleFunc("GET /track/{id}", s.handleTrack)
	mux.HandleFunc("POST /advance-status/{id}", s.handleAdvance)
	mux.HandleFunc("GET /photos/{name}", s.handlePhoto)
	return s.logRequests(mux)
}

// Run starts the HTTP server and blocks until the context is cancelled
// or the listener fails. Shutdown waits for in-flight requests to finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("submission service listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.logger.Info("shutting down submission service")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down cleanly: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("submission service failed: %w", err)
	}
}

// photoPath returns the on-disk path for a stored photo name.
func (s *Server) photoPath(name string) string {
	return filepath.Join(s.dataDir, photoDirName, name)
}
