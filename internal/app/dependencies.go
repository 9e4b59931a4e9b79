package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"
	"weatherview.app/internal/adapters/database"
	"weatherview.app/internal/adapters/external"
	"weatherview.app/internal/adapters/infrastructure"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/favourites"
	"weatherview.app/internal/core/weather"
	"weatherview.app/internal/ports"
)

type DependencyContainer struct {
	config *config.Config

	logger     ports.Logger
	fileLogger *infrastructure.FileLoggerAdapter
	metrics    *infrastructure.PrometheusMetricsCollector
	registry   *external.ForecastProviderRegistry
	cache      external.CacheBackend
	db         *gorm.DB
	favourites *favourites.Store
	loop       *infrastructure.EventLoop
	repository *weather.Repository

	ports *ports.ApplicationPorts
}

func NewDependencyContainer(ctx context.Context, cfg *config.Config, base *slog.Logger) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
		logger: infrastructure.NewSlogLoggerAdapter(base),
		loop:   infrastructure.NewEventLoop(),
	}

	if err := container.initializePreferences(ctx); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize preferences: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := container.initializeRepository(); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize repository: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePreferences(ctx context.Context) error {
	c.logger.Info("Opening preferences database", ports.F("driver", c.config.Preferences.Driver))

	db, err := database.Open(c.config.Preferences)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	c.db = db

	store, err := favourites.Open(ctx, database.NewPreferenceRepositoryAdapter(db), c.logger)
	if err != nil {
		return fmt.Errorf("open favourites: %w", err)
	}
	c.favourites = store
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	c.logger.Info("Initializing ports...")

	// Service calls also go to the call log when one is configured
	serviceLogger := c.logger
	if c.config.Log.FilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath)
		if err != nil {
			c.logger.Warn("Failed to create file logger, service calls go to the main log only",
				ports.F("error", err.Error()))
		} else {
			c.fileLogger = fileLogger
			serviceLogger = infrastructure.MultiLogger{c.logger, fileLogger}
			c.logger.Info("Service call log enabled", ports.F("path", c.config.Log.FilePath))
		}
	}

	resilience := external.DefaultResilienceConfig()
	resilience.Timeout = c.config.HTTP.Timeout()
	resilience.MaxRetries = c.config.HTTP.MaxRetries
	resilience.BreakerTimeout = c.config.HTTP.BreakerTimeout()

	bom, err := external.NewBomServiceAdapter(external.BomServiceParams{
		BaseURL:     c.config.Bom.BaseURL,
		StationsURL: c.config.Bom.StationsURL,
		UserAgent:   c.config.Bom.UserAgent,
		Resilience:  resilience,
		Logger:      c.logger,
	})
	if err != nil {
		return fmt.Errorf("create bom adapter: %w", err)
	}

	c.registry = external.NewForecastProviderRegistry(external.ProviderRegistryConfig{
		OpenWeatherMapKey:     c.config.Forecast.OpenWeatherMapKey,
		OpenWeatherMapBaseURL: c.config.Forecast.OpenWeatherMapBaseURL,
		ForecastIOKey:         c.config.Forecast.ForecastIOKey,
		ForecastIOBaseURL:     c.config.Forecast.ForecastIOBaseURL,
		Resilience:            resilience,
		Logger:                c.logger,
	})

	c.metrics = infrastructure.NewPrometheusMetricsCollector()

	var service ports.WeatherService = external.NewWeatherServiceAdapter(bom, c.registry)
	service = external.NewWeatherServiceLoggingDecorator(service, serviceLogger)
	service = external.NewWeatherServiceMetricsDecorator(service, c.metrics)

	var snapshots ports.SnapshotCache
	if c.config.Cache.SnapshotEnabled {
		cache, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
		if err != nil {
			c.logger.Warn("Cache backend unavailable, using in-memory snapshots",
				ports.F("type", c.config.Cache.Type.String()),
				ports.F("error", err.Error()))
			cache = external.NewMemoryCacheProvider()
		}
		c.cache = cache
		snapshots = external.NewSnapshotCacheAdapter(cache, c.config.Cache.TTL())
		c.logger.Info("Snapshot cache initialized",
			ports.F("type", c.config.Cache.Type.String()),
			ports.F("ttl", c.config.Cache.TTL().String()))
	}

	c.ports = &ports.ApplicationPorts{
		WeatherService:   service,
		SnapshotCache:    snapshots,
		PreferenceStore:  database.NewPreferenceRepositoryAdapter(c.db),
		ConfigProvider:   infrastructure.NewConfigProviderAdapter(c.config),
		Logger:           c.logger,
		MetricsCollector: c.metrics,
		Dispatcher:       c.loop,
	}
	if c.cache != nil {
		c.ports.CacheProvider = c.cache
		c.ports.CacheMetrics = c.cache
	}

	c.logger.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) initializeRepository() error {
	repo, err := weather.NewRepository(weather.Dependencies{
		Service:    c.ports.WeatherService,
		Snapshots:  c.ports.SnapshotCache,
		Dispatcher: c.ports.Dispatcher,
		Favourites: c.favourites,
		Config:     c.ports.ConfigProvider,
		Logger:     c.ports.Logger,
		Metrics:    c.ports.MetricsCollector,
	})
	if err != nil {
		return err
	}
	c.repository = repo
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Repository() *weather.Repository {
	return c.repository
}

func (c *DependencyContainer) EventLoop() *infrastructure.EventLoop {
	return c.loop
}

func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetricsCollector {
	return c.metrics
}

func (c *DependencyContainer) ProviderInfo() infrastructure.ProviderInfo {
	return c.registry
}

// HealthCheckers returns the checks served by the diagnostics endpoint
func (c *DependencyContainer) HealthCheckers() []ports.HealthChecker {
	return []ports.HealthChecker{
		infrastructure.NewDatabaseHealthChecker(c.db),
		infrastructure.NewCacheHealthChecker(c.ports.CacheProvider, c.ports.CacheMetrics),
		infrastructure.NewForecastProviderHealthChecker(c.registry),
	}
}

// Cleanup stops background work and closes every store, in reverse order of creation
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.repository != nil {
		c.repository.Close()
	}
	if c.loop != nil {
		c.loop.Stop()
	}
	if c.favourites != nil {
		keep(c.favourites.Close())
	}
	if closer, ok := c.cache.(io.Closer); ok {
		keep(closer.Close())
	}
	if c.db != nil {
		keep(database.Close(c.db))
	}
	if c.fileLogger != nil {
		keep(c.fileLogger.Close())
	}
	return firstErr
}
