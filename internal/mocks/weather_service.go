package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weatherview.app/internal/models"
)

// WeatherService is a mock of ports.WeatherService
type WeatherService struct {
	mock.Mock
}

func (m *WeatherService) FetchStates(ctx context.Context) ([]models.State, error) {
	args := m.Called(ctx)
	states, _ := args.Get(0).([]models.State)
	return states, args.Error(1)
}

func (m *WeatherService) FetchStations(ctx context.Context, stateCode string) ([]models.Station, error) {
	args := m.Called(ctx, stateCode)
	stations, _ := args.Get(0).([]models.Station)
	return stations, args.Error(1)
}

func (m *WeatherService) FetchObservations(ctx context.Context, station models.Station) ([]models.Observation, error) {
	args := m.Called(ctx, station)
	observations, _ := args.Get(0).([]models.Observation)
	return observations, args.Error(1)
}

func (m *WeatherService) FetchForecasts(ctx context.Context, station models.Station, site models.ForecastSite) ([]models.Forecast, error) {
	args := m.Called(ctx, station, site)
	forecasts, _ := args.Get(0).([]models.Forecast)
	return forecasts, args.Error(1)
}

// ForecastProvider is a mock of ports.ForecastProvider
type ForecastProvider struct {
	mock.Mock
}

func (m *ForecastProvider) GetForecasts(ctx context.Context, station models.Station) ([]models.Forecast, error) {
	args := m.Called(ctx, station)
	forecasts, _ := args.Get(0).([]models.Forecast)
	return forecasts, args.Error(1)
}

func (m *ForecastProvider) GetProviderName() string {
	return m.Called().String(0)
}
