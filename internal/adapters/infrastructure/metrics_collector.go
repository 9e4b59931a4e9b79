package infrastructure

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherview.app/internal/ports"
)

// PrometheusMetricsCollector implements the MetricsCollector port on a private registry
type PrometheusMetricsCollector struct {
	registry     *prometheus.Registry
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	serviceCalls *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// NewPrometheusMetricsCollector registers the weatherview metrics on a new registry
func NewPrometheusMetricsCollector() *PrometheusMetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &PrometheusMetricsCollector{
		registry: registry,
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherview_repository_cache_hits_total",
				Help: "The total number of repository cache hits",
			},
			[]string{"kind"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherview_repository_cache_misses_total",
				Help: "The total number of repository cache misses",
			},
			[]string{"kind"},
		),
		serviceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weatherview_service_calls_total",
				Help: "The total number of weather service calls",
			},
			[]string{"operation", "provider", "result"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weatherview_service_call_duration_seconds",
				Help:    "Weather service call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "provider"},
		),
	}
}

func (m *PrometheusMetricsCollector) RecordCacheHit(kind string) {
	m.cacheHits.WithLabelValues(kind).Inc()
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(kind string) {
	m.cacheMisses.WithLabelValues(kind).Inc()
}

func (m *PrometheusMetricsCollector) RecordServiceCall(operation, provider string, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "error"
	}
	m.serviceCalls.WithLabelValues(operation, provider, result).Inc()
	m.latency.WithLabelValues(operation, provider).Observe(duration.Seconds())
}

// Registry exposes the underlying registry
func (m *PrometheusMetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *PrometheusMetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ProviderInfo describes the configured forecast providers
type ProviderInfo interface {
	GetProviderInfo() map[string]interface{}
}

// DiagnosticsReporter aggregates provider and cache state for the diagnostics endpoint
type DiagnosticsReporter struct {
	providers    ProviderInfo
	cacheMetrics ports.CacheMetrics
}

// DiagnosticsReporterConfig holds configuration for creating the reporter
type DiagnosticsReporterConfig struct {
	Providers    ProviderInfo
	CacheMetrics ports.CacheMetrics
}

// NewDiagnosticsReporter creates a new diagnostics reporter
func NewDiagnosticsReporter(config DiagnosticsReporterConfig) *DiagnosticsReporter {
	return &DiagnosticsReporter{
		providers:    config.Providers,
		cacheMetrics: config.CacheMetrics,
	}
}

// GetMetrics returns aggregated provider and cache metrics
func (d *DiagnosticsReporter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := map[string]interface{}{}

	if d.providers != nil {
		metrics["forecast_providers"] = d.providers.GetProviderInfo()
	}

	if d.cacheMetrics != nil {
		metrics["snapshot_cache"] = d.cacheMetrics.GetStats()
	}

	return metrics, nil
}
