// Package api serves the layout store over HTTP.
//
// All endpoints speak JSON. Errors are returned as {"code", "message"} with
// the HTTP status derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/forgeboard/pkg/store"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// Server exposes a [store.Store] as a JSON API.
type Server struct {
	store   *store.Store
	logger  *log.Logger
	columns int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithColumns sets the grid width used to pack layouts in responses.
func WithColumns(n int) Option {
	return func(s *Server) { s.columns = n }
}

// New creates a server backed by st.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{store: st, columns: tier.Columns}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Handler returns the router with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, s.logRequests, recoverer(s.logger))
	s.RegisterHTTP(r)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	return r
}

// RegisterHTTP mounts the endpoints on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/presets", s.handlePresets)
		r.Post("/snap", s.handleSnap)

		r.Route("/users/{user}", func(r chi.Router) {
			r.Get("/layout", s.handleGetCurrent)
			r.Put("/layout", s.handlePutCurrent)
			r.Get("/layouts", s.handleList)
			r.Get("/layouts/{name}", s.handleGetSaved)
			r.Put("/layouts/{name}", s.handlePutSaved)
			r.Delete("/layouts/{name}", s.handleDeleteSaved)
			r.Get("/layouts/{name}/share", s.handleShare)
			r.Post("/import", s.handleImport)
		})
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
