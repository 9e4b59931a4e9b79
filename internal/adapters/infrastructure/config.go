package infrastructure

import (
	"time"

	"weatherview.app/internal/config"
	"weatherview.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config   *config.Config
	location *time.Location
}

// NewConfigProviderAdapter creates a new config provider adapter. The config must have been validated.
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	location, err := cfg.Display.Location()
	if err != nil {
		location = time.UTC
	}
	return &ConfigProviderAdapter{
		config:   cfg,
		location: location,
	}
}

// GetRepositoryConfig returns weather repository configuration
func (c *ConfigProviderAdapter) GetRepositoryConfig() ports.RepositoryConfig {
	return ports.RepositoryConfig{
		DefaultForecastSite: c.config.Forecast.Site,
		FetchTimeout:        c.config.HTTP.Timeout() * time.Duration(c.config.HTTP.MaxRetries+1),
	}
}

// GetDisplayConfig returns presentation configuration
func (c *ConfigProviderAdapter) GetDisplayConfig() ports.DisplayConfig {
	return ports.DisplayConfig{
		Location:            c.location,
		ZeroFillUnparseable: c.config.Display.ZeroFillUnparseable,
	}
}
