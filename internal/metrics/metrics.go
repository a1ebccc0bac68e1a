// Package metrics provides Prometheus instrumentation for the catalog
// server. Metrics are exposed on a dedicated listener so the public
// API surface stays clean.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/config"
)

// Metrics holds the Prometheus collectors for the catalog server.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequestsTotal counts handled HTTP requests by method, route
	// pattern, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration *prometheus.HistogramVec

	// QuoteRequestsTotal counts calls to the upstream quote provider.
	QuoteRequestsTotal prometheus.Counter

	// QuoteFallbacksTotal counts quote requests served from the local
	// fallback because the provider failed.
	QuoteFallbacksTotal prometheus.Counter
}

// New creates the metric collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		QuoteRequestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_quote_requests_total",
			Help: "Total number of upstream quote provider calls.",
		}),
		QuoteFallbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_quote_fallbacks_total",
			Help: "Total number of quote requests served from the local fallback.",
		}),
	}
}

// Middleware instruments handled requests. It must run inside the chi
// router so the matched route pattern is available.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server returns an HTTP server exposing the scrape endpoint per the
// metrics configuration. The caller owns its lifecycle.
func (m *Metrics) Server(cfg config.MetricsConfig, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, m.Handler())

	logger.Info().Int("port", cfg.Port).Str("path", cfg.Path).Msg("metrics endpoint configured")

	return &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: mux,
	}
}
