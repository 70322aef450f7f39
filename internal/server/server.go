// Package server exposes the projection engine over HTTP for interactive front ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Options configures a Server.
type Options struct {
	Projection   domain.ProjectionSettings // defaults for requests that omit the window
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves projections, comparisons, presets and actual data.
type Server struct {
	engine  *calculation.ProjectionEngine
	parser  *config.InputParser
	actuals *calculation.ActualDataManager
	opts    Options
	logger  *logrus.Logger
	router  *mux.Router
}

// New builds a server. The actual data manager must already be loaded.
func New(engine *calculation.ProjectionEngine, actuals *calculation.ActualDataManager, opts Options, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	opts.Projection = opts.Projection.WithDefaults()
	s := &Server{
		engine:  engine,
		parser:  config.NewInputParser(),
		actuals: actuals,
		opts:    opts,
		logger:  logger,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/scenarios", s.handleScenarios).Methods(http.MethodGet)
	s.router.HandleFunc("/scenarios/{name}", s.handleScenario).Methods(http.MethodGet)
	s.router.HandleFunc("/actuals", s.handleActuals).Methods(http.MethodGet)
	s.router.HandleFunc("/projection", s.handleProjection).Methods(http.MethodPost)
	s.router.HandleFunc("/comparison", s.handleComparison).Methods(http.MethodPost)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
