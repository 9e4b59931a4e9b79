package external

import (
	"context"

	"weatherview.app/internal/models"
)

// WeatherServiceAdapter composes the BoM adapter and the forecast providers into one
// ports.WeatherService.
type WeatherServiceAdapter struct {
	bom       *BomServiceAdapter
	forecasts *ForecastProviderRegistry
}

// NewWeatherServiceAdapter creates the composite weather service
func NewWeatherServiceAdapter(bom *BomServiceAdapter, forecasts *ForecastProviderRegistry) *WeatherServiceAdapter {
	return &WeatherServiceAdapter{bom: bom, forecasts: forecasts}
}

func (s *WeatherServiceAdapter) FetchStates(ctx context.Context) ([]models.State, error) {
	return s.bom.FetchStates(ctx)
}

func (s *WeatherServiceAdapter) FetchStations(ctx context.Context, stateCode string) ([]models.Station, error) {
	return s.bom.FetchStations(ctx, stateCode)
}

func (s *WeatherServiceAdapter) FetchObservations(ctx context.Context, station models.Station) ([]models.Observation, error) {
	return s.bom.FetchObservations(ctx, station)
}

func (s *WeatherServiceAdapter) FetchForecasts(ctx context.Context, station models.Station, site models.ForecastSite) ([]models.Forecast, error) {
	return s.forecasts.GetForecasts(ctx, station, site)
}

// GetProviderInfo describes the configured forecast providers
func (s *WeatherServiceAdapter) GetProviderInfo() map[string]interface{} {
	return s.forecasts.GetProviderInfo()
}
