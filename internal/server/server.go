// Package server exposes latest-commit lookups over HTTP.
//
// Routes:
//
//	GET /healthz                              -> "ok"
//	GET /repos/{owner}/{name}/latest-commit   -> {"repo": ..., "latest_commit": ...}
//
// Failures are returned as {"error": message, "code": code} with a status
// derived from the error code (see [StatusFor]).
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// serve context is cancelled.
const shutdownTimeout = 5 * time.Second

// Fetcher looks up the latest commit date of a repository.
type Fetcher interface {
	LatestCommitDate(ctx context.Context, repo string) (string, error)
}

var _ Fetcher = (*github.Client)(nil)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Timeout bounds each request. Zero disables the per-request deadline.
	Timeout time.Duration

	// Logger receives one line per request. Defaults to log.Default().
	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	addr    string
	handler http.Handler
	logger  *log.Logger
}

// New creates a Server backed by f.
func New(f Fetcher, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:    opts.Addr,
		handler: newRouter(f, opts.Timeout, logger),
		logger:  logger,
	}
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newRouter(f Fetcher, timeout time.Duration, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/repos/{owner}/{name}/latest-commit", latestCommitHandler(f))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown endpoint", Code: "NOT_FOUND"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})
	return r
}
