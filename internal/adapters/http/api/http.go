// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/chargesense/internal/domain/types"
	"github.com/okian/chargesense/pkg/logger"
)

// Summarizer turns an uploaded spreadsheet into the weekly summary.
type Summarizer interface {
	Summarize(ctx context.Context, filename string, r io.Reader) (types.Summary, error)
}

// DefaultMaxUploadBytes caps upload bodies when no limit is configured.
const DefaultMaxUploadBytes int64 = 32 << 20

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler   *RootHandler
	uploadHandler *UploadHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler

	cors    CORSConfig
	limiter *RateLimiter
	logger  logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxUploadBytes int64
	allowedOrigins []string
	rps            float64
	burst          int
	logger         logger.Logger
}

// WithMaxUploadBytes bounds the upload body size.
func WithMaxUploadBytes(n int64) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxUploadBytes = n
		}
	}
}

// WithAllowedOrigins sets the CORS origins allowed to call the API.
func WithAllowedOrigins(origins []string) Option {
	return func(o *serverOptions) {
		o.allowedOrigins = origins
	}
}

// WithRateLimit limits POST /upload to rps requests per second with the
// given burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *serverOptions) {
		o.rps = rps
		o.burst = burst
	}
}

// WithLogger sets a custom logger for request logging.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(summarizer Summarizer, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{maxUploadBytes: DefaultMaxUploadBytes, burst: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("http")
	}

	s := &Server{
		rootHandler:   NewRootHandler(),
		uploadHandler: NewUploadHandler(summarizer, o.maxUploadBytes, o.logger),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		cors: CORSConfig{
			AllowedOrigins:   o.allowedOrigins,
			AllowCredentials: true,
			ExposedHeaders:   []string{requestIDHeader},
		},
		logger: o.logger,
	}
	if o.rps > 0 {
		s.limiter = NewRateLimiter(o.rps, o.burst, o.logger)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	upload := s.uploadHandler.HandleUpload
	if s.limiter != nil {
		upload = s.limiter.Limit(upload)
	}

	mux.HandleFunc("/{$}", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	mux.HandleFunc("/upload", MetricsMiddleware(upload, "upload"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

// Handler wraps next with request IDs and CORS. It should wrap the whole mux
// so preflight requests are answered before routing.
func (s *Server) Handler(next http.Handler) http.Handler {
	return RequestID(CORS(s.cors)(next))
}

type errorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	MissingTabs []string `json:"missingTabs,omitempty"`
}

// writeJSON encodes v before touching the header so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{
			Code:    "internal_error",
			Message: NewKind("api.encode", ErrInternal).Error(),
		})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func methodNotAllowed(w http.ResponseWriter, op, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
}
