// Package metricsx holds the Prometheus collectors shared by the catalog
// services. Each binary serves its own process, so a single package-level
// registry is enough.
package metricsx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ecatalog"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pedidos",
			Name:      "resolutions_total",
			Help:      "Request approvals and rejections by outcome.",
		},
		[]string{"decision", "outcome"},
	)

	upstreamCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to downstream services.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"service", "status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		resolutions,
		upstreamCalls,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware wraps a handler with request count, latency and in-flight
// metrics. Paths are collapsed to their route shape to keep label
// cardinality bounded.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := Route(r.URL.Path)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordResolution counts a request approval or rejection attempt.
func RecordResolution(decision, outcome string) {
	resolutions.WithLabelValues(decision, outcome).Inc()
}

// RecordUpstream observes one call to a downstream service. status is the
// HTTP status code, or 0 when the call never got a response.
func RecordUpstream(service string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamCalls.WithLabelValues(service, label).Observe(d.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Route keeps the static segments of a path and replaces identifier-like
// segments with ":id", e.g. /db/pedidos/01J.../approve -> /db/pedidos/:id/approve.
func Route(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}

	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		if isVariable(p) {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

var staticSegments = map[string]struct{}{
	"db": {}, "api": {}, "auth": {}, "users": {}, "me": {},
	"pedidos": {}, "clientes": {}, "admin": {}, "demos": {}, "logs": {}, "views": {},
	"all": {}, "pending": {}, "approved": {}, "rejected": {}, "active": {}, "expired": {},
	"approve": {}, "reject": {}, "extend": {}, "create": {}, "update": {}, "delete": {},
	"by-cliente": {}, "by-demo": {}, "by-tipo": {}, "by-email": {}, "by-email-with-password": {},
	"by-vertical": {}, "by-horizontal": {}, "stats": {}, "summary": {}, "pending-requests": {},
	"login": {}, "logout": {}, "validate": {}, "livez": {}, "readyz": {}, "swagger": {},
}

func isVariable(seg string) bool {
	_, ok := staticSegments[seg]
	return !ok
}
