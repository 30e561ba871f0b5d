// Package rest exposes the account and note managers over HTTP/JSON with the
// route shape of the original service: /users and /notes, one path per
// resource, the record id carried in the body.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	handler         http.Handler
	logger          logging.Logger
}

func NewHTTPServer(a string, shutdownTimeout time.Duration, l logging.Logger, m *metrics.Metrics, as AccountManager, ns NoteManager) *HTTPServer {
	logger := l.With("module", "http_server")
	return &HTTPServer{
		address:         a,
		shutdownTimeout: shutdownTimeout,
		handler:         NewRouter(logger, m, as, ns),
		logger:          logger,
	}
}

// NewRouter builds the chi router with recovery, request ids and metrics.
func NewRouter(l logging.Logger, m *metrics.Metrics, as AccountManager, ns NoteManager) chi.Router {
	h := &handler{accounts: as, notes: ns, logger: l}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		echoRequestID,
	)
	if m != nil {
		r.Use(observe(m))
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/ping", h.handlePing)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleListAccounts)
		r.Post("/", h.handleCreateAccount)
		r.Patch("/", h.handleUpdateAccount)
		r.Delete("/", h.handleDeleteAccount)
		r.Get("/{id}", h.handleGetAccount)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.handleListNotes)
		r.Post("/", h.handleCreateNote)
		r.Patch("/", h.handleUpdateNote)
		r.Delete("/", h.handleDeleteNote)
		r.Get("/{id}", h.handleGetNote)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down within the configured
// grace period.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
