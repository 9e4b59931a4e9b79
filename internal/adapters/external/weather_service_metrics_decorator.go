package external

import (
	"context"
	"time"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
)

// WeatherServiceMetricsDecorator records the outcome and latency of every service call
type WeatherServiceMetricsDecorator struct {
	service ports.WeatherService
	metrics ports.MetricsCollector
}

// NewWeatherServiceMetricsDecorator creates a metrics decorator for the weather service
func NewWeatherServiceMetricsDecorator(service ports.WeatherService, metrics ports.MetricsCollector) ports.WeatherService {
	return &WeatherServiceMetricsDecorator{service: service, metrics: metrics}
}

func (d *WeatherServiceMetricsDecorator) FetchStates(ctx context.Context) ([]models.State, error) {
	start := time.Now()
	states, err := d.service.FetchStates(ctx)
	d.metrics.RecordServiceCall("states", bomProviderName, err == nil, time.Since(start))
	return states, err
}

func (d *WeatherServiceMetricsDecorator) FetchStations(ctx context.Context, stateCode string) ([]models.Station, error) {
	start := time.Now()
	stations, err := d.service.FetchStations(ctx, stateCode)
	d.metrics.RecordServiceCall("stations", bomProviderName, err == nil, time.Since(start))
	return stations, err
}

func (d *WeatherServiceMetricsDecorator) FetchObservations(ctx context.Context, station models.Station) ([]models.Observation, error) {
	start := time.Now()
	observations, err := d.service.FetchObservations(ctx, station)
	d.metrics.RecordServiceCall("observations", bomProviderName, err == nil, time.Since(start))
	return observations, err
}

func (d *WeatherServiceMetricsDecorator) FetchForecasts(ctx context.Context, station models.Station, site models.ForecastSite) ([]models.Forecast, error) {
	start := time.Now()
	forecasts, err := d.service.FetchForecasts(ctx, station, site)
	d.metrics.RecordServiceCall("forecasts", string(site), err == nil, time.Since(start))
	return forecasts, err
}
