package external

import (
	"context"
	"fmt"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// ForecastProviderRegistry selects a forecast provider by site id
type ForecastProviderRegistry struct {
	providers map[models.ForecastSite]ports.ForecastProvider
	logger    ports.Logger
}

// ProviderRegistryConfig holds configuration for creating the provider registry
type ProviderRegistryConfig struct {
	OpenWeatherMapKey     string
	OpenWeatherMapBaseURL string
	ForecastIOKey         string
	ForecastIOBaseURL     string
	Client                HTTPClient
	Resilience            ResilienceConfig
	Logger                ports.Logger
}

// NewForecastProviderRegistry creates a registry holding every provider that has credentials
func NewForecastProviderRegistry(config ProviderRegistryConfig) *ForecastProviderRegistry {
	registry := &ForecastProviderRegistry{
		providers: make(map[models.ForecastSite]ports.ForecastProvider),
		logger:    config.Logger,
	}

	if config.OpenWeatherMapKey != "" {
		registry.Register(NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
			APIKey:     config.OpenWeatherMapKey,
			BaseURL:    config.OpenWeatherMapBaseURL,
			Client:     config.Client,
			Resilience: config.Resilience,
			Logger:     config.Logger,
		}))
	}

	if config.ForecastIOKey != "" {
		registry.Register(NewForecastIOProviderAdapter(ForecastIOProviderParams{
			APIKey:     config.ForecastIOKey,
			BaseURL:    config.ForecastIOBaseURL,
			Client:     config.Client,
			Resilience: config.Resilience,
			Logger:     config.Logger,
		}))
	}

	return registry
}

// Register adds or replaces the provider for its site
func (r *ForecastProviderRegistry) Register(provider ports.ForecastProvider) {
	site := models.ForecastSite(provider.GetProviderName())
	r.providers[site] = provider
	if r.logger != nil {
		r.logger.Debug("Registered forecast provider", ports.F("provider", site))
	}
}

// Provider returns the provider for site or a ConfigurationError
func (r *ForecastProviderRegistry) Provider(site models.ForecastSite) (ports.ForecastProvider, error) {
	if !site.IsValid() {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unknown forecast site %q", site), nil)
	}
	provider, ok := r.providers[site]
	if !ok {
		return nil, errors.NewConfigurationError(fmt.Sprintf("forecast site %q is not configured", site), nil)
	}
	return provider, nil
}

// GetForecasts delegates to the provider registered for site
func (r *ForecastProviderRegistry) GetForecasts(ctx context.Context, station models.Station, site models.ForecastSite) ([]models.Forecast, error) {
	provider, err := r.Provider(site)
	if err != nil {
		return nil, err
	}
	return provider.GetForecasts(ctx, station)
}

// GetProviderInfo returns information about configured providers
func (r *ForecastProviderRegistry) GetProviderInfo() map[string]interface{} {
	names := make([]string, 0, len(r.providers))
	for _, site := range models.ForecastSites {
		if _, ok := r.providers[site]; ok {
			names = append(names, string(site))
		}
	}

	return map[string]interface{}{
		"total_providers": len(names),
		"providers":       names,
	}
}
