package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for look-angle computations.
const (
	OutcomeOK         = "ok"
	OutcomeDegenerate = "degenerate"
	OutcomeInvalid    = "invalid"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewangle_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "viewangle_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewangle_computations_total",
			Help: "Look-angle computations by outcome.",
		},
		[]string{"outcome"},
	)

	elevationDegrees = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "viewangle_elevation_degrees",
			Help:    "Distribution of computed elevation angles.",
			Buckets: prometheus.LinearBuckets(-90, 15, 13),
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(computationsTotal)
	prometheus.MustRegister(elevationDegrees)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveComputation records one computation. elevation is ignored unless
// the outcome is OutcomeOK.
func ObserveComputation(outcome string, elevation float64) {
	computationsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		elevationDegrees.Observe(elevation)
	}
}

var knownRoutes = map[string]bool{
	"/healthz":            true,
	"/readyz":             true,
	"/metrics":            true,
	"/api/v1/look-angles": true,
	"/api/v1/ellipsoid":   true,
}

// normalizeRoute keeps the path label bounded: anything outside the
// registered routes collapses to "other".
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}
