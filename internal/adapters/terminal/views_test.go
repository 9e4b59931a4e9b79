package terminal

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/core/forecasts"
	"weatherview.app/internal/models"
)

type stationsListener struct {
	favouritesLoads int
}

func (l *stationsListener) LoadStates(bool) {}
func (l *stationsListener) LoadStations(string, bool) {}
func (l *stationsListener) LoadFavouriteStations(bool) { l.favouritesLoads++ }
func (l *stationsListener) AddFavouriteStation(models.Station) {}
func (l *stationsListener) RemoveFavouriteStation(models.Station) {}
func (l *stationsListener) OpenObservations(models.Station) {}

type observationsListener struct {
	loads []bool
}

func (l *observationsListener) LoadObservations(_ models.Station, force bool) {
	l.loads = append(l.loads, force)
}

func TestBase_SettlesWhenProgressPairs(t *testing.T) {
	v := NewStationsView(&bytes.Buffer{}, 80)

	v.SetProgressBar(true)
	v.SetProgressBar(true)
	assert.False(t, v.Settled())

	v.SetProgressBar(false)
	assert.False(t, v.Settled())

	v.SetProgressBar(false)
	assert.True(t, v.Settled())

	v.Reset()
	assert.False(t, v.Settled())
}

func TestBase_ShowErrorIsRemembered(t *testing.T) {
	var out bytes.Buffer
	v := NewForecastsView(&out, 80, forecasts.ChartOptions{})

	v.ShowError(errors.New("service unavailable"))

	require.Error(t, v.Err())
	assert.Contains(t, out.String(), "service unavailable")

	v.Reset()
	assert.NoError(t, v.Err())
}

func TestStationsView_OnReadyLoadsFavourites(t *testing.T) {
	listener := &stationsListener{}
	v := NewStationsView(&bytes.Buffer{}, 80)
	v.SetActionListener(listener)

	v.OnReady()

	assert.Equal(t, 1, listener.favouritesLoads)
	assert.Same(t, listener, v.Listener())
}

func TestStationsView_Tables(t *testing.T) {
	var out bytes.Buffer
	v := NewStationsView(&out, 100)
	lat, lon := -37.83, 144.98

	v.ShowStates([]models.State{{Code: "VIC", Name: "Victoria"}})
	v.ShowStations([]models.Station{{ID: "IDV60801.94866", City: "Melbourne", StateCode: "VIC", Latitude: &lat, Longitude: &lon}})
	v.ShowFavourites(nil)

	text := out.String()
	assert.Contains(t, text, "Victoria")
	assert.Contains(t, text, "IDV60801.94866")
	assert.Contains(t, text, "-37.83, 144.98")
	assert.Contains(t, text, "No favourite stations yet")
}

func TestObservationsView_RendersTableAndChart(t *testing.T) {
	var out bytes.Buffer
	listener := &observationsListener{}
	v := NewObservationsView(&out, 100)
	v.SetActionListener(listener)

	station := models.Station{ID: "IDV60801.94866", City: "Melbourne", StateCode: "VIC"}
	v.OnReady(station)
	v.Refresh(station)
	assert.Equal(t, []bool{false, true}, listener.loads)

	v.ShowObservations([]models.Observation{
		{StationName: "Melbourne (Olympic Park)", DateTime: "20240102150000", AirTemp: "24.5"},
		{StationName: "Melbourne (Olympic Park)", DateTime: "20240102143000", AirTemp: "23.9"},
		{StationName: "Melbourne (Olympic Park)", DateTime: "20240102140000", AirTemp: "-"},
	})
	v.ShowChart()

	text := out.String()
	assert.Contains(t, text, "Observations: Melbourne (Olympic Park)")
	assert.Contains(t, text, "Air temp ▁█")
}

func TestObservationsView_Empty(t *testing.T) {
	var out bytes.Buffer
	v := NewObservationsView(&out, 80)

	v.ShowObservations(nil)
	v.ShowChart()

	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), "No observations available")
}

func TestForecastsView_RendersLatestTableAndChart(t *testing.T) {
	var out bytes.Buffer
	v := NewForecastsView(&out, 120, forecasts.ChartOptions{Location: time.UTC})

	start := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	var list []models.Forecast
	for i, temp := range []string{"14.0", "18.5", "22.0", "16.0"} {
		list = append(list, models.Forecast{
			StationID:   "IDV60801.94866",
			Provider:    models.ForecastSiteOpenWeatherMap,
			Time:        strconvUnix(start.Add(time.Duration(i*3) * time.Hour)),
			Temp:        temp,
			Description: "clear sky",
			Name:        "Melbourne",
		})
	}

	v.ShowForecasts(list)
	v.ShowLatestForecast(list[0])
	v.ShowForecastTable(list)
	v.ShowForecastChart(list)

	text := out.String()
	assert.Contains(t, text, "Forecast: Melbourne (openweathermap)")
	assert.Contains(t, text, "clear sky")
	assert.Contains(t, text, "Tue 02 Jan  min  14.0  max  22.0  9am  18.5  3pm  16.0")
}

func TestForecastsView_EmptyList(t *testing.T) {
	var out bytes.Buffer
	v := NewForecastsView(&out, 80, forecasts.ChartOptions{})

	v.ShowForecasts([]models.Forecast{})

	assert.Contains(t, out.String(), "No forecasts available")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", sparkline(nil, 10))
	assert.Equal(t, "▁▁▁", sparkline([]float64{5, 5, 5}, 10))
	assert.Equal(t, "▁█", sparkline([]float64{0, 10}, 10))
	assert.Len(t, []rune(sparkline([]float64{1, 2, 3, 4, 5, 6}, 3)), 3)
}

func TestRenderChart_NoTemperatures(t *testing.T) {
	assert.Contains(t, RenderChart(forecasts.Chart{}, time.UTC, 80), "No temperatures to chart")
}

func strconvUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
