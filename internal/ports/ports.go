// Package ports defines the interfaces between the core and its adapters.
// These interfaces are implemented by adapters and mocked for testing.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherService WeatherService
	SnapshotCache  SnapshotCache

	// Persistence
	PreferenceStore PreferenceStore

	// Cache
	CacheProvider CacheProvider
	CacheMetrics  CacheMetrics

	// Infrastructure
	ConfigProvider   ConfigProvider
	Logger           Logger
	MetricsCollector MetricsCollector
	Dispatcher       Dispatcher
}
