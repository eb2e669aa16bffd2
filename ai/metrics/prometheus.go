// Package metrics provides Prometheus metrics export for the HTTP and summarize paths.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "notekeeper"

// PrometheusExporter exports server metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequests *prometheus.CounterVec

	// Summarize metrics
	summarizeRequests *prometheus.CounterVec
	summarizeLatency  prometheus.Histogram

	// LLM token metrics
	llmTokensUsed *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	e.summarizeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "summarize_requests_total",
			Help:      "Total number of summarize requests",
		},
		[]string{"status"},
	)

	e.summarizeLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "summarize_latency_seconds",
			Help:      "Summarize request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
	)

	e.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"type"},
	)

	registry.MustRegister(
		e.httpRequests,
		e.summarizeRequests,
		e.summarizeLatency,
		e.llmTokensUsed,
	)

	return e
}

// RecordHTTPRequest records a served HTTP request. route is the registered
// path pattern, not the raw URL, to keep label cardinality bounded.
func (e *PrometheusExporter) RecordHTTPRequest(method, route string, status int) {
	e.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordSummarize records a summarize call. status is one of
// "success", "invalid", "error" or "superseded".
func (e *PrometheusExporter) RecordSummarize(status string, latency time.Duration) {
	e.summarizeRequests.WithLabelValues(status).Inc()
	e.summarizeLatency.Observe(latency.Seconds())
}

// RecordLLMTokens records LLM token usage.
func (e *PrometheusExporter) RecordLLMTokens(tokenType string, count int) {
	if count <= 0 {
		return
	}
	e.llmTokensUsed.WithLabelValues(tokenType).Add(float64(count))
}

// Handler returns an HTTP handler for the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Handler().ServeHTTP(w, r)
}

// GetRegistry returns the Prometheus registry.
func (e *PrometheusExporter) GetRegistry() *prometheus.Registry {
	return e.registry
}
