package internal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics collection for HTTP requests,
// the inventory size and assistant queries
type Metrics struct {
	reqTotal       *prometheus.CounterVec
	reqLatency     *prometheus.HistogramVec
	assistantTotal *prometheus.CounterVec
	registry       *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with a private Prometheus registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	assistantTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Assistant queries by outcome",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(reqTotal, reqLatency, assistantTotal)

	return &Metrics{
		reqTotal:       reqTotal,
		reqLatency:     reqLatency,
		assistantTotal: assistantTotal,
		registry:       registry,
	}
}

// ObserveAssistantQuery counts one assistant query
func (m *Metrics) ObserveAssistantQuery(outcome string) {
	m.assistantTotal.WithLabelValues(outcome).Inc()
}

// TrackInventory exposes the live size of the store as inventory_assets
func (m *Metrics) TrackInventory(store interface{ Len() int }) error {
	return m.registry.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "inventory_assets",
			Help: "Assets currently in the inventory",
		},
		func() float64 { return float64(store.Len()) },
	))
}

// Middleware returns a Chi middleware that collects metrics
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

			next.ServeHTTP(rw, r)

			// label by route pattern so ids don't explode cardinality
			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil {
				if pattern := chiCtx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns an http.Handler that serves Prometheus metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}
