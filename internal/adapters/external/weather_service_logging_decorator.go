package external

import (
	"context"
	"time"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
)

const bomProviderName = "bom"

// WeatherServiceLoggingDecorator decorates a weather service with structured logging
type WeatherServiceLoggingDecorator struct {
	service ports.WeatherService
	logger  ports.Logger
}

// NewWeatherServiceLoggingDecorator creates a new logging decorator for the weather service
func NewWeatherServiceLoggingDecorator(service ports.WeatherService, logger ports.Logger) ports.WeatherService {
	return &WeatherServiceLoggingDecorator{
		service: service,
		logger:  logger,
	}
}

func (d *WeatherServiceLoggingDecorator) FetchStates(ctx context.Context) ([]models.State, error) {
	var states []models.State
	err := d.log("states", bomProviderName, nil, func() (int, error) {
		var err error
		states, err = d.service.FetchStates(ctx)
		return len(states), err
	})
	return states, err
}

func (d *WeatherServiceLoggingDecorator) FetchStations(ctx context.Context, stateCode string) ([]models.Station, error) {
	var stations []models.Station
	err := d.log("stations", bomProviderName, []ports.Field{ports.F("state", stateCode)}, func() (int, error) {
		var err error
		stations, err = d.service.FetchStations(ctx, stateCode)
		return len(stations), err
	})
	return stations, err
}

func (d *WeatherServiceLoggingDecorator) FetchObservations(ctx context.Context, station models.Station) ([]models.Observation, error) {
	var observations []models.Observation
	err := d.log("observations", bomProviderName, []ports.Field{ports.F("station_id", station.ID)}, func() (int, error) {
		var err error
		observations, err = d.service.FetchObservations(ctx, station)
		return len(observations), err
	})
	return observations, err
}

func (d *WeatherServiceLoggingDecorator) FetchForecasts(ctx context.Context, station models.Station, site models.ForecastSite) ([]models.Forecast, error) {
	var forecasts []models.Forecast
	err := d.log("forecasts", string(site), []ports.Field{ports.F("station_id", station.ID)}, func() (int, error) {
		var err error
		forecasts, err = d.service.FetchForecasts(ctx, station, site)
		return len(forecasts), err
	})
	return forecasts, err
}

func (d *WeatherServiceLoggingDecorator) log(operation, provider string, extra []ports.Field, call func() (int, error)) error {
	fields := append([]ports.Field{
		ports.F("operation", operation),
		ports.F("provider", provider),
	}, extra...)

	d.logger.Info("Weather service request started", append(fields, ports.F("event", "request"))...)

	startTime := time.Now()
	count, err := call()
	duration := time.Since(startTime)

	fields = append(fields, ports.F("duration_ms", duration.Milliseconds()))
	if err != nil {
		d.logger.Error("Weather service request failed",
			append(fields, ports.F("event", "error"), ports.F("error", err.Error()))...)
		return err
	}

	d.logger.Info("Weather service request completed",
		append(fields, ports.F("event", "response"), ports.F("count", count))...)
	return nil
}
