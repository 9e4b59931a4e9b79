package mocks

import (
	"github.com/stretchr/testify/mock"
	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
)

// WeatherRepository is a mock of ports.WeatherRepository. Callbacks are passed through as
// arguments so tests can complete them in any order.
type WeatherRepository struct {
	mock.Mock
}

func (m *WeatherRepository) GetStates(forceUpdate bool, cb ports.StatesCallback) {
	m.Called(forceUpdate, cb)
}

func (m *WeatherRepository) GetStations(stateCode string, forceUpdate bool, cb ports.StationsCallback) {
	m.Called(stateCode, forceUpdate, cb)
}

func (m *WeatherRepository) GetObservations(station models.Station, forceUpdate bool, cb ports.ObservationsCallback) {
	m.Called(station, forceUpdate, cb)
}

func (m *WeatherRepository) GetForecasts(station models.Station, forceUpdate bool, cb ports.ForecastsCallback) {
	m.Called(station, forceUpdate, cb)
}

func (m *WeatherRepository) GetFavouriteStations(forceUpdate bool, cb ports.StationsCallback) {
	m.Called(forceUpdate, cb)
}

func (m *WeatherRepository) AddFavouriteStation(station models.Station) {
	m.Called(station)
}

func (m *WeatherRepository) RemoveFavouriteStation(station models.Station) {
	m.Called(station)
}

func (m *WeatherRepository) SetForecastSite(site string) error {
	return m.Called(site).Error(0)
}

func (m *WeatherRepository) ForecastSite() models.ForecastSite {
	return m.Called().Get(0).(models.ForecastSite)
}
