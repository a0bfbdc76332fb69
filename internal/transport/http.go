package transport

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/report"
)

// Files serves stored binary content outside the MCP channel.
type Files interface {
	DownloadDocument(ctx context.Context, id string) (*project.Document, []byte, error)
	ProjectReport(ctx context.Context, projectID string) ([]byte, error)
}

// Server wires HTTP handlers.
type Server struct {
	files  Files
	logger *slog.Logger
}

// NewServer creates the HTTP router. mcpHandler serves the streamable MCP
// endpoint and may be nil in tests.
func NewServer(mcpHandler http.Handler, files Files, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	srv := &Server{files: files, logger: logger}

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
	}
	r.Get("/health", srv.handleHealth)
	r.Get("/documents/{id}", srv.handleDocument)
	r.Get("/projects/{id}/report", srv.handleReport)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, data, err := s.files.DownloadDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	contentType := doc.MimeType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(doc.Name))
	http.ServeContent(w, r, doc.Name, doc.UploadedAt, bytes.NewReader(data))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := s.files.ProjectReport(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	name := "project-" + id + ".xlsx"
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

// requestLogger logs one line per request, including the MCP session id
// when the client sends one.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			}
			if sessionID := r.Header.Get("Mcp-Session-Id"); sessionID != "" {
				attrs = append(attrs, "session_id", sessionID)
			}
			logger.Debug("http request", attrs...)
		})
	}
}
