package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, exporter *PrometheusExporter) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	exporter.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	return w.Body.String()
}

func TestPrometheusExporter(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())

	exporter.RecordHTTPRequest(http.MethodPost, "/api/summarize", http.StatusOK)
	exporter.RecordHTTPRequest(http.MethodPost, "/api/summarize", http.StatusOK)
	exporter.RecordHTTPRequest(http.MethodGet, "/api/summarize", http.StatusMethodNotAllowed)
	exporter.RecordSummarize("success", 300*time.Millisecond)
	exporter.RecordSummarize("error", 50*time.Millisecond)
	exporter.RecordLLMTokens("total", 120)
	exporter.RecordLLMTokens("total", 0)

	body := scrape(t, exporter)
	for _, line := range []string{
		`notekeeper_http_requests_total{method="POST",route="/api/summarize",status="200"} 2`,
		`notekeeper_http_requests_total{method="GET",route="/api/summarize",status="405"} 1`,
		`notekeeper_ai_summarize_requests_total{status="success"} 1`,
		`notekeeper_ai_summarize_requests_total{status="error"} 1`,
		`notekeeper_ai_summarize_latency_seconds_count 2`,
		`notekeeper_ai_llm_tokens_total{type="total"} 120`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("expected %q in output", line)
		}
	}
}

func TestPrometheusExporterHandler(t *testing.T) {
	exporter := NewPrometheusExporter(DefaultConfig())

	exporter.RecordHTTPRequest(http.MethodGet, "/api/notes", http.StatusOK)
	exporter.RecordSummarize("success", 100*time.Millisecond)
	exporter.RecordLLMTokens("total", 10)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()

	exporter.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, name := range []string{
		"notekeeper_http_requests_total",
		"notekeeper_ai_summarize_requests_total",
		"notekeeper_ai_summarize_latency_seconds",
		"notekeeper_ai_llm_tokens_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in output", name)
		}
	}
}

func TestPrometheusExporterCustomRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	exporter := NewPrometheusExporter(Config{Registry: registry})

	if exporter.GetRegistry() != registry {
		t.Error("expected exporter to use the provided registry")
	}

	exporter.RecordSummarize("invalid", time.Millisecond)
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected metric families in custom registry")
	}
}
