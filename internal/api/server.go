package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/paunstefan/view-angle-calculator/internal/auth"
	"github.com/paunstefan/view-angle-calculator/internal/config"
	"github.com/paunstefan/view-angle-calculator/internal/metrics"
	"github.com/paunstefan/view-angle-calculator/internal/transform"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a configured HTTP server computing look angles on the
// given ellipsoid.
func NewServer(cfg config.ServerConfig, ellipsoid transform.Ellipsoid, logger *slog.Logger) *Server {
	// Build middleware chain: request id -> metrics -> logging -> auth -> mux.
	var handler http.Handler = NewRouter(ellipsoid, logger)
	handler = auth.Middleware(cfg.AuthToken)(handler)
	handler = loggingMiddleware(logger, cfg.TrustProxy)(handler)
	handler = metrics.Middleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter registers all routes without middleware.
func NewRouter(ellipsoid transform.Ellipsoid, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthz)
	mux.HandleFunc("GET /readyz", readyz(ellipsoid))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/ellipsoid", ellipsoidHandler(ellipsoid))
	mux.HandleFunc("GET /api/v1/look-angles", lookAnglesHandler(logger, ellipsoid))

	return mux
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}
