package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

const maxDocumentBytes = 16 << 20

// RecordExtractor reads a Record out of a Document.
type RecordExtractor interface {
	Extract(doc domain.Document) domain.Record
}

// Server exposes health, readiness, metrics and synchronous extraction
// endpoints.
type Server struct {
	httpServer  *http.Server
	extractor   RecordExtractor
	defaultMode string
	logger      *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// POST /extract routes. mode is the output mode used when a request does not
// name one.
func NewServer(addr string, ready sharedobs.ReadinessChecker, extractor RecordExtractor, mode string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		extractor:   extractor,
		defaultMode: mode,
		logger:      logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /extract", s.handleExtract)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = s.defaultMode
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	doc, err := domain.ParseRawEvent(domain.RawEvent{Value: body})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec := s.extractor.Extract(doc)
	data, err := domain.EncodeRecord(rec, mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.Debug("document extracted over http", "document_id", doc.ID, "mode", mode)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}) //nolint:errcheck // best-effort error response
}
