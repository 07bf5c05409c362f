// ABOUTME: Server assembly for taskdeck: store, cache, codec, API, and HTTP server
// ABOUTME: Owns startup, the middleware chain, and graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389/taskdeck/internal/api"
	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/cache"
	"github.com/2389/taskdeck/internal/config"
	"github.com/2389/taskdeck/internal/store"
)

// shutdownTimeout bounds how long in-flight requests may run during shutdown.
const shutdownTimeout = 5 * time.Second

// Server wires together the store, cache, token codec, and HTTP surface.
type Server struct {
	config     *config.Config
	store      store.Store
	cache      *cache.TaskCache
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server from configuration. All dependencies are
// constructed here and passed down explicitly; no component reaches for
// globals.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s, err := openStore(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	var taskCache *cache.TaskCache
	if cfg.Cache.Enabled {
		taskCache, err = cache.New(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connecting cache: %w", err)
		}
	}

	codec := auth.NewJWTCodec([]byte(cfg.Auth.JWTSecret))

	mux := http.NewServeMux()
	api.New(s, taskCache, codec, cfg.Auth.TokenTTL).RegisterRoutes(mux)

	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.Handler())
	}

	handler := buildHandlerChain(mux, cfg, logger)

	srv := &Server{
		config: cfg,
		store:  s,
		cache:  taskCache,
		logger: logger.With("component", "server"),
		httpServer: &http.Server{
			Addr:    cfg.Server.HTTPAddr,
			Handler: handler,
		},
	}

	return srv, nil
}

// openStore selects the store engine from configuration.
func openStore(cfg config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return store.NewSQLiteStore(cfg.Path)
	case "postgres":
		return store.NewPostgresStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// buildHandlerChain applies middleware outermost-first: recovery wraps
// everything so even a panic in the logging layer degrades to a 500.
func buildHandlerChain(mux *http.ServeMux, cfg *config.Config, logger *slog.Logger) http.Handler {
	var handler http.Handler = mux
	if cfg.Metrics.Enabled {
		handler = metricsMiddleware(handler)
	}
	handler = corsMiddleware(handler)
	handler = loggingMiddleware(logger.With("component", "http"))(handler)
	handler = recoveryMiddleware(logger.With("component", "http"))(handler)
	return handler
}

// Run serves HTTP until the context is canceled or the server fails,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	case serverErr = <-errCh:
		s.logger.Error("http server failed", "error", serverErr)
	}

	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)

	if s.cache != nil {
		if cerr := s.cache.Close(); cerr != nil {
			s.logger.Warn("closing cache", "error", cerr)
		}
	}
	if serr := s.store.Close(); serr != nil {
		s.logger.Warn("closing store", "error", serr)
	}

	return err
}
