package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/fsa/internal/logging"
	"github.com/aretw0/fsa/internal/presentation/graph"
	"github.com/aretw0/fsa/internal/presentation/report"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBody caps definition uploads. Larger bodies are rejected with 413.
const maxBody = 4 << 20

// Analyzer is the part of the library the HTTP API drives.
type Analyzer interface {
	AnalyzeDefinition(ctx context.Context, name string, def *schema.Definition) (*domain.Report, error)
	Report(ctx context.Context, name string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Server serves the analysis API.
type Server struct {
	analyzer Analyzer
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes g on /metrics (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the analyzer.
func NewHandler(analyzer Analyzer, opts ...Option) http.Handler {
	s := &Server{
		analyzer: analyzer,
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Post("/automata/{name}/analyze", s.Analyze)
	r.Get("/reports", s.ListReports)
	r.Get("/reports/{name}", s.GetReport)
	r.Delete("/reports/{name}", s.DeleteReport)
	r.Post("/graph", s.Graph)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Analyze handles POST /automata/{name}/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, err := readDefinition(w, r)
	if err != nil {
		s.fail(w, "Analyze: invalid definition", err)
		return
	}

	rep, err := s.analyzer.AnalyzeDefinition(r.Context(), name, def)
	if err != nil {
		s.fail(w, "Analyze failed", err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ListReports handles GET /reports.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	names, err := s.analyzer.Reports(r.Context())
	if err != nil {
		s.fail(w, "ListReports failed", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// GetReport handles GET /reports/{name}. With ?format=html the report is
// rendered as an HTML page.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.analyzer.Report(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetReport failed", err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.WritePage(w, rep, nil); err != nil {
			s.logger.Error("GetReport: write failed", "err", err)
		}
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, report.Markdown(rep))
	default:
		writeJSON(w, http.StatusOK, rep)
	}
}

// DeleteReport handles DELETE /reports/{name}.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.analyzer.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "DeleteReport failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Graph handles POST /graph?format=mermaid|dot[&overlay=true].
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	def, err := readDefinition(w, r)
	if err != nil {
		s.fail(w, "Graph: invalid definition", err)
		return
	}
	a, err := def.Build()
	if err != nil {
		s.fail(w, "Graph: invalid definition", err)
		return
	}

	var overlay *domain.Report
	if r.URL.Query().Get("overlay") == "true" {
		if overlay, err = a.Analyze(); err != nil {
			s.fail(w, "Graph: analysis failed", err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	switch format := r.URL.Query().Get("format"); format {
	case "", "mermaid":
		io.WriteString(w, graph.GenerateMermaid(a, overlay))
	case "dot":
		io.WriteString(w, graph.GenerateDot(a, overlay))
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported graph format %q", format))
	}
}

// readDefinition decodes the request body as YAML when the content type
// (or ?input=yaml) says so, JSON otherwise.
func readDefinition(w http.ResponseWriter, r *http.Request) (*schema.Definition, error) {
	format := schema.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = schema.FormatYAML
	}
	if in := r.URL.Query().Get("input"); in != "" {
		f, err := schema.ParseFormat(in)
		if err != nil {
			return nil, &requestError{err}
		}
		format = f
	}
	return schema.DecodeReader(http.MaxBytesReader(w, r.Body, maxBody), format)
}

type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// statusOf maps library errors to HTTP status codes.
func statusOf(err error) int {
	var (
		tooBig   *http.MaxBytesError
		reqErr   *requestError
		valErr   *schema.ValidationError
		aggErr   *schema.AggregateError
		refErr   *domain.InvalidTransitionReferenceError
		dupErr   *domain.DuplicateLabelError
		stateErr *domain.UnknownStateError
		eventErr *domain.UnknownEventError
	)
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDegenerateInitialSet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, schema.ErrSyntax):
		return http.StatusBadRequest
	case errors.As(err, &reqErr), errors.As(err, &valErr), errors.As(err, &aggErr),
		errors.As(err, &refErr), errors.As(err, &dupErr),
		errors.As(err, &stateErr), errors.As(err, &eventErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "err", err)
	} else {
		s.logger.Warn(msg, "err", err, "status", status)
	}
	writeError(w, status, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
