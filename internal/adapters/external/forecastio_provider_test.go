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

const forecastIOBody = `{
	"latitude": -37.83,
	"longitude": 144.98,
	"timezone": "Australia/Melbourne",
	"hourly": {
		"summary": "Light rain tomorrow.",
		"data": [
			{"time": 1475596800, "summary": "Overcast", "temperature": 15.02, "apparentTemperature": 15.02, "humidity": 0.71, "pressure": 1011.9, "windSpeed": 4.58},
			{"time": 1475593200, "summary": "Mostly Cloudy", "temperature": 16.4, "apparentTemperature": 16.4, "humidity": 0.65, "pressure": 1011.4, "windSpeed": 5.02}
		]
	}
}`

func newTestForecastIO(t *testing.T, baseURL string) *ForecastIOProviderAdapter {
	return NewForecastIOProviderAdapter(ForecastIOProviderParams{
		APIKey:     "fio-key",
		BaseURL:    baseURL,
		Resilience: fastResilience(),
		Logger:     mocks.NewQuietLogger(t),
	})
}

func TestForecastIOProvider_GetForecasts_Success(t *testing.T) {
	server := jsonServer(t, http.StatusOK, forecastIOBody, func(r *http.Request) {
		assert.Equal(t, "/forecast/fio-key/-37.83,144.98", r.URL.Path)
		assert.Equal(t, "si", r.URL.Query().Get("units"))
	})
	provider := newTestForecastIO(t, server.URL)

	station := models.Station{ID: "IDV60801.94866", City: "Melbourne (Olympic Park)", Latitude: floatPtr(-37.83), Longitude: floatPtr(144.98)}
	forecasts, err := provider.GetForecasts(context.Background(), station)

	require.NoError(t, err)
	require.Len(t, forecasts, 2)

	first := forecasts[0]
	assert.Equal(t, "1475593200", first.Time)
	assert.Equal(t, models.ForecastSiteForecastIO, first.Provider)
	assert.Equal(t, "16.4", first.Temp)
	assert.Equal(t, "Mostly Cloudy", first.Description)
	assert.Equal(t, "0.65", first.Humidity)
	assert.Empty(t, first.MinTemp, "forecast.io hourly data has no minimum")
	assert.Empty(t, first.MaxTemp)
	assert.Nil(t, first.Rain)
	assert.Equal(t, "Melbourne (Olympic Park)", first.Name)
}

func TestForecastIOProvider_Errors(t *testing.T) {
	t.Run("NoCoordinates", func(t *testing.T) {
		_, err := newTestForecastIO(t, "http://unused").GetForecasts(context.Background(), models.Station{ID: "x", City: "Ballarat"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("MissingHourly", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, `{"latitude": 1}`, nil)
		station := models.Station{ID: "x", Latitude: floatPtr(1), Longitude: floatPtr(2)}
		_, err := newTestForecastIO(t, server.URL).GetForecasts(context.Background(), station)
		assert.True(t, errors.IsProtocolError(err))
	})
}
