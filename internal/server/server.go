// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/pmrt/internal/version"
	"github.com/jmylchreest/pmrt/pkg/cleaner"
	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

// DefaultMaxBodyBytes limits the size of a request body.
const DefaultMaxBodyBytes = 10 << 20

// Options configures the server.
type Options struct {
	Addr            string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Server is the HTTP API server for pmrt.
type Server struct {
	router    chi.Router
	converter *pmrt.Converter
	markdown  cleaner.Cleaner
	log       *slog.Logger
	opts      Options
}

// New creates and configures the HTTP server.
func New(converter *pmrt.Converter, log *slog.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		converter: converter,
		markdown:  cleaner.NewChain(converter.Preparer(), cleaner.NewMarkdown()),
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

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Post("/v1/convert", s.handleConvert)

	s.router = r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

// handleConvert reads an HTML body and answers with the text. The query
// parameter to=markdown selects Markdown output and format=json wraps the
// answer in a JSON result with stats.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	q := r.URL.Query()
	asJSON := q.Get("format") == "json"

	switch to := q.Get("to"); to {
	case "", "text":
	case "markdown":
		out, err := s.markdown.Clean(string(body))
		if err != nil {
			s.log.Error("markdown conversion failed", "error", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if asJSON {
			writeJSON(w, http.StatusOK, pmrt.Result{Content: out})
			return
		}
		writeText(w, "text/markdown; charset=utf-8", out)
		return
	default:
		writeError(w, http.StatusBadRequest, "unsupported output: "+to)
		return
	}

	result, err := s.converter.ConvertWithStats(string(body))
	if err != nil {
		s.log.Error("conversion failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if asJSON {
		writeJSON(w, http.StatusOK, result)
		return
	}
	writeText(w, "text/plain; charset=utf-8", result.Content)
}

func writeText(w http.ResponseWriter, contentType, text string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
