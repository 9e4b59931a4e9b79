package infrastructure

import (
	"context"

	"weatherview.app/internal/ports"
)

// Pinger is implemented by cache backends with a remote connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker checks the snapshot cache backend
type CacheHealthChecker struct {
	cache   ports.CacheProvider
	metrics ports.CacheMetrics
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache ports.CacheProvider, metrics ports.CacheMetrics) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, metrics: metrics}
}

// Check pings remote backends; in-process caches are always healthy
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    ports.StatusHealthy,
		Details:   make(map[string]interface{}),
	}

	if c.cache == nil {
		status.Details["enabled"] = false
		return status
	}
	status.Details["enabled"] = true

	if pinger, ok := c.cache.(Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			status.Status = ports.StatusUnhealthy
			status.Error = err.Error()
			return status
		}
	}

	if c.metrics != nil {
		status.Details["hit_ratio"] = c.metrics.GetStats().HitRatio
	}
	return status
}

// ForecastProviderHealthChecker reports whether any forecast provider is configured
type ForecastProviderHealthChecker struct {
	providers ProviderInfo
}

// NewForecastProviderHealthChecker creates a new forecast provider health checker
func NewForecastProviderHealthChecker(providers ProviderInfo) *ForecastProviderHealthChecker {
	return &ForecastProviderHealthChecker{providers: providers}
}

// Check reports the configured providers without calling them
func (f *ForecastProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "forecast_providers",
		Status:    ports.StatusHealthy,
	}

	if f.providers == nil {
		status.Status = ports.StatusUnhealthy
		status.Error = "forecast providers are not available"
		return status
	}

	status.Details = f.providers.GetProviderInfo()
	if total, _ := status.Details["total_providers"].(int); total == 0 {
		status.Status = ports.StatusUnhealthy
		status.Error = "no forecast provider has an API key"
	}
	return status
}
