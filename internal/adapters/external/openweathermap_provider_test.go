package external

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/mocks"
	"weatherview.app/internal/models"
	"weatherview.app/pkg/errors"
)

const owmForecastBody = `{
	"cod": "200",
	"list": [
		{
			"dt": 1475604000,
			"main": {"temp": 14.2, "feels_like": 12.9, "temp_min": 13.5, "temp_max": 14.2, "pressure": 1012.53, "humidity": 71},
			"weather": [{"id": 500, "description": "light rain"}],
			"wind": {"speed": 5.61},
			"rain": {"3h": 0.45}
		},
		{
			"dt": 1475593200,
			"main": {"temp": 17.5, "feels_like": 16.1, "temp_min": 15, "temp_max": 18, "pressure": 1010, "humidity": 55},
			"weather": [{"id": 800, "description": "clear sky"}],
			"wind": {"speed": 4.1}
		}
	],
	"city": {"name": "Melbourne", "coord": {"lat": -37.814, "lon": 144.9633}}
}`

func newTestOpenWeatherMap(t *testing.T, baseURL string) *OpenWeatherMapProviderAdapter {
	return NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:     "test-api-key",
		BaseURL:    baseURL,
		Resilience: fastResilience(),
		Logger:     mocks.NewQuietLogger(t),
	})
}

func TestOpenWeatherMapProvider_GetForecasts_Success(t *testing.T) {
	server := jsonServer(t, http.StatusOK, owmForecastBody, func(r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "-37.83", r.URL.Query().Get("lat"))
		assert.Equal(t, "144.98", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
	})
	provider := newTestOpenWeatherMap(t, server.URL)

	station := models.Station{ID: "IDV60801.94866", City: "Melbourne (Olympic Park)", Latitude: floatPtr(-37.83), Longitude: floatPtr(144.98)}
	forecasts, err := provider.GetForecasts(context.Background(), station)

	require.NoError(t, err)
	require.Len(t, forecasts, 2)

	first := forecasts[0]
	assert.Equal(t, "1475593200", first.Time, "ordered by time")
	assert.Equal(t, models.ForecastSiteOpenWeatherMap, first.Provider)
	assert.Equal(t, "IDV60801.94866", first.StationID)
	assert.Equal(t, "17.5", first.Temp)
	assert.Equal(t, "15", first.MinTemp)
	assert.Equal(t, "clear sky", first.Description)
	assert.Nil(t, first.Rain)
	assert.Equal(t, "Melbourne", first.Name)
	assert.Equal(t, "-37.814", first.Lat)

	second := forecasts[1]
	require.NotNil(t, second.Rain)
	assert.Equal(t, "0.45", *second.Rain)
	assert.Equal(t, "1012.53", second.Pressure)
	assert.Equal(t, "5.61", second.WindSpeed)
}

func TestOpenWeatherMapProvider_CityFallback(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{"list": []}`, func(r *http.Request) {
		assert.Equal(t, "Ballarat,AU", r.URL.Query().Get("q"))
		assert.Empty(t, r.URL.Query().Get("lat"))
	})
	provider := newTestOpenWeatherMap(t, server.URL)

	forecasts, err := provider.GetForecasts(context.Background(), models.Station{ID: "IDV60801.94852", City: "Ballarat"})

	require.NoError(t, err)
	assert.Empty(t, forecasts)
}

func TestOpenWeatherMapProvider_Errors(t *testing.T) {
	t.Run("MissingList", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, `{"cod": "200"}`, nil)
		_, err := newTestOpenWeatherMap(t, server.URL).GetForecasts(context.Background(), models.Station{ID: "x", City: "Melbourne"})
		assert.True(t, errors.IsProtocolError(err))
	})

	t.Run("Unauthorized", func(t *testing.T) {
		server := jsonServer(t, http.StatusUnauthorized, `{"cod": 401}`, nil)
		_, err := newTestOpenWeatherMap(t, server.URL).GetForecasts(context.Background(), models.Station{ID: "x", City: "Melbourne"})
		assert.True(t, errors.IsProtocolError(err))
	})

	t.Run("NoLocation", func(t *testing.T) {
		_, err := newTestOpenWeatherMap(t, "http://unused").GetForecasts(context.Background(), models.Station{ID: "x"})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestOpenWeatherMapProvider_GetProviderName(t *testing.T) {
	assert.Equal(t, "openweathermap", newTestOpenWeatherMap(t, "").GetProviderName())
}
