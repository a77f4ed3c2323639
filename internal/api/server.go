// Package api serves statement conversion over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/metrics"
	"fjacquet/fsv-csv/internal/parser"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "PDF to Excel Converter"

// Options configures the conversion endpoint.
type Options struct {
	MaxUploadBytes    int64
	AllowedExtensions []string
	Export            common.ExportOptions
}

// Timeouts bounds the lifetime of requests and of the shutdown.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// Server is the HTTP API server for fsv-csv.
type Server struct {
	router    chi.Router
	converter parser.Parser
	metrics   *metrics.Metrics
	log       logging.Logger
	opts      Options
}

// NewServer creates and configures the HTTP server.
func NewServer(converter parser.Parser, m *metrics.Metrics, log logging.Logger, opts Options) *Server {
	s := &Server{
		converter: converter,
		metrics:   m,
		log:       log,
		opts:      opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/convert", s.handleConvert)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, timeouts Timeouts) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  timeouts.Read,
		WriteTimeout: timeouts.Write,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting conversion service", logging.Field{Key: "addr", Value: addr})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down conversion service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
