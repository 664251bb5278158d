// Package metrics provides Prometheus instrumentation for chefmenu.
//
// It pre-defines the HTTP metrics every server needs plus the menu
// catalog metrics, all registered on DefaultRegistry:
//
//	r.Use(metrics.Middleware())
//	r.Handle(http.MethodGet, "/metrics", "", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chefmenu"

// ─────────────────────────────────────────────
// HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration is labelled by the route pattern (e.g.
	// /api/menu/{id}), never the raw path, to keep cardinality bounded.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "route"},
	)

	// RateLimited counts requests rejected with 429, by limiter store.
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		},
		[]string{"store"}, // "redis" | "memory"
	)
)

// ─────────────────────────────────────────────
// Menu metrics
// ─────────────────────────────────────────────

var (
	// MenuItems is the current number of dishes per course.
	MenuItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "items",
			Help:      "Dishes currently on the menu.",
		},
		[]string{"course"},
	)

	MenuMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "mutations_total",
			Help:      "Accepted menu mutations.",
		},
		[]string{"op"}, // "add" | "remove"
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "validation_failures_total",
			Help:      "Rejected dishes, by broken rule.",
		},
		[]string{"violation"},
	)

	CardsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "cards_published_total",
			Help:      "Menu cards written to storage.",
		},
		[]string{"disk"},
	)
)

// ─────────────────────────────────────────────
// Bot metrics
// ─────────────────────────────────────────────

var (
	BotUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bot",
			Name:      "updates_total",
			Help:      "Telegram updates handled, by outcome.",
		},
		[]string{"kind", "status"}, // status: "ok" | "error" | "ignored" | "dropped"
	)

	BotUpdateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bot",
			Name:      "update_duration_seconds",
			Help:      "Time to answer a Telegram update.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)

// ─────────────────────────────────────────────
// Background work
// ─────────────────────────────────────────────

var (
	ScheduledRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "runs_total",
			Help:      "Scheduled task runs, by outcome.",
		},
		[]string{"task", "outcome"}, // "ok" | "panic" | "skipped"
	)

	OutboundRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "retries_total",
			Help:      "Outbound HTTP attempts that were retried.",
		},
		[]string{"host"},
	)
)

// DefaultRegistry is the registry every chefmenu metric lives in.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		RateLimited,
		MenuItems,
		MenuMutations,
		ValidationFailures,
		CardsPublished,
		BotUpdates,
		BotUpdateDuration,
		ScheduledRuns,
		OutboundRetries,
	)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records duration, count, in-flight and response size for
// every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			route := RoutePattern(r)
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, route, status).Inc()
			ResponseSize.WithLabelValues(r.Method, route).Observe(float64(rr.size))
		})
	}
}

// RoutePattern is the matched chi pattern, or "unmatched".
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler exposes DefaultRegistry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveBotUpdate records one handled Telegram update.
//
//	defer metrics.ObserveBotUpdate("command", "ok", time.Now())
func ObserveBotUpdate(kind, status string, start time.Time) {
	BotUpdates.WithLabelValues(kind, status).Inc()
	BotUpdateDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
