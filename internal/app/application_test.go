package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/config"
	"weatherview.app/internal/models"
)

const melbourneID = "IDV60801.94866"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Forecast: config.ForecastConfig{Site: "openweathermap"},
		HTTP:     config.HTTPConfig{TimeoutSeconds: 1, MaxRetries: 0, BreakerTimeoutSeconds: 1},
		Cache: config.CacheConfig{
			Type:            config.CacheTypeMemory,
			SnapshotEnabled: true,
			TTLMinutes:      10,
		},
		Preferences: config.PreferencesConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "preferences.db"),
		},
		Display: config.DisplayConfig{TimeZone: "UTC"},
		Log:     config.LogConfig{Level: "info", Format: "text"},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	application, err := NewApplication(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	return application
}

func shutdown(t *testing.T, application *Application) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))
}

func favouriteStations(t *testing.T, application *Application, force bool) []models.Station {
	t.Helper()

	var (
		got  []models.Station
		err  error
		done bool
	)
	loop := application.EventLoop()
	loop.Post(func() {
		application.Repository().GetFavouriteStations(force, func(stations []models.Station, e error) {
			got, err, done = stations, e, true
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	loop.RunUntil(ctx, func() bool { return done })

	require.True(t, done, "favourites callback never ran")
	require.NoError(t, err)
	return got
}

func TestApplication_StartsWithNoFavourites(t *testing.T) {
	application := newTestApplication(t, testConfig(t))
	defer shutdown(t, application)

	assert.Empty(t, favouriteStations(t, application, false))
}

func TestApplication_FavouritesSurviveRestart(t *testing.T) {
	cfg := testConfig(t)
	melbourne := models.Station{ID: melbourneID, City: "Melbourne (Olympic Park)", StateCode: "VIC"}

	first := newTestApplication(t, cfg)
	first.EventLoop().Post(func() { first.Repository().AddFavouriteStation(melbourne) })
	first.EventLoop().RunUntil(context.Background(), func() bool { return true })
	shutdown(t, first)

	second := newTestApplication(t, cfg)
	defer shutdown(t, second)

	stations := favouriteStations(t, second, false)
	require.Len(t, stations, 1)
	assert.Equal(t, melbourneID, stations[0].ID)
	assert.Equal(t, "VIC", stations[0].StateCode)
}

func TestApplication_RememberedForecastSiteIsRestored(t *testing.T) {
	cfg := testConfig(t)

	first := newTestApplication(t, cfg)
	require.NoError(t, first.Repository().SetForecastSite("forecastio"))
	first.RememberForecastSite(context.Background())
	shutdown(t, first)

	second := newTestApplication(t, cfg)
	defer shutdown(t, second)
	assert.Equal(t, models.ForecastSiteForecastIO, second.Repository().ForecastSite())
}

func TestApplication_DefaultForecastSite(t *testing.T) {
	application := newTestApplication(t, testConfig(t))
	defer shutdown(t, application)

	assert.Equal(t, models.ForecastSiteOpenWeatherMap, application.Repository().ForecastSite())
}

func TestApplication_ChartOptionsUseDisplayZone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Display.ZeroFillUnparseable = true

	application := newTestApplication(t, cfg)
	defer shutdown(t, application)

	opts := application.ChartOptions()
	assert.Equal(t, time.UTC, opts.Location)
	assert.True(t, opts.ZeroFillUnparseable)
}

func TestApplication_OptionalServicesDisabled(t *testing.T) {
	application := newTestApplication(t, testConfig(t))
	defer shutdown(t, application)

	assert.NoError(t, application.StartDiagnostics(context.Background()))
	assert.Nil(t, application.diagnostics)

	assert.NoError(t, application.StartRefresh("favourites", 0, func() {}))
	assert.Nil(t, application.scheduler)
}

func TestApplication_RejectsUnknownPreferencesDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Preferences.Driver = "mongodb"

	_, err := NewApplication(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}
