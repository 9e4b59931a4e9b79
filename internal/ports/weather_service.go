package ports

import (
	"context"

	"weatherview.app/internal/models"
)

// WeatherService is the facade over the remote providers. Each call returns exactly once
// with either a (possibly empty) slice or an error.
type WeatherService interface {
	FetchStates(ctx context.Context) ([]models.State, error)
	FetchStations(ctx context.Context, stateCode string) ([]models.Station, error)
	FetchObservations(ctx context.Context, station models.Station) ([]models.Observation, error)
	FetchForecasts(ctx context.Context, station models.Station, site models.ForecastSite) ([]models.Forecast, error)
}

// ForecastProvider defines the contract for a single remote forecast source
type ForecastProvider interface {
	GetForecasts(ctx context.Context, station models.Station) ([]models.Forecast, error)
	GetProviderName() string
}

// Callbacks used by the repository. Each fires exactly once, on the UI goroutine.
type (
	StatesCallback       func(states []models.State, err error)
	StationsCallback     func(stations []models.Station, err error)
	ObservationsCallback func(observations []models.Observation, err error)
	ForecastsCallback    func(forecasts []models.Forecast, err error)
)

// WeatherRepository is the cached data access used by presenters. All methods must be called
// on the UI goroutine.
type WeatherRepository interface {
	GetStates(forceUpdate bool, cb StatesCallback)
	GetStations(stateCode string, forceUpdate bool, cb StationsCallback)
	GetObservations(station models.Station, forceUpdate bool, cb ObservationsCallback)
	GetForecasts(station models.Station, forceUpdate bool, cb ForecastsCallback)
	GetFavouriteStations(forceUpdate bool, cb StationsCallback)
	AddFavouriteStation(station models.Station)
	RemoveFavouriteStation(station models.Station)
	SetForecastSite(site string) error
	ForecastSite() models.ForecastSite
}

// Dispatcher runs work on the single UI goroutine
type Dispatcher interface {
	Post(fn func())
}
