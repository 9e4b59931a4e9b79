package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }

func TestNewObservation_CloudNormalisation(t *testing.T) {
	tests := []struct {
		name     string
		cloud    string
		expected string
	}{
		{"DashBecomesClear", "-", "Clear"},
		{"PassThrough", "Mostly cloudy", "Mostly cloudy"},
		{"EmptyPassThrough", "", ""},
		{"OnlyExactDash", "--", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := NewObservation(RawObservation{WMO: "94866", Cloud: tt.cloud})
			assert.Equal(t, tt.expected, obs.Cloud)
		})
	}
}

func TestNewObservation_FieldMapping(t *testing.T) {
	obs := NewObservation(RawObservation{
		WMO:               "94866",
		Name:              "Melbourne (Olympic Park)",
		LocalDateTimeFull: "20161004153000",
		AirTemp:           "17.2",
		ApparentT:         "14.1",
		RainTrace:         "Trace",
		RelHum:            "55",
		WindDir:           "NNW",
		PressQnh:          "1012.3",
	})

	assert.Equal(t, "94866", obs.StationID, "station id comes from the wmo field")
	assert.Equal(t, "17.2", obs.AirTemp)
	assert.Equal(t, "Trace", obs.Rain)
	assert.Equal(t, "-", obs.WindGustKt)
	assert.Equal(t, "1012.3", obs.PressureQnh)

	row := obs.Row()
	require.Len(t, row, len(ObservationColumns))
	assert.Equal(t, "03:30 PM Tue 04/10/16", row[0])
	assert.Equal(t, "17.2", row[1])
}

func TestNormalizeObservations(t *testing.T) {
	in := []Observation{
		{DateTime: "20161004150000", AirTemp: "15"},
		{DateTime: "20161004160000", AirTemp: "16"},
		{DateTime: "20161004150000", AirTemp: "dup"},
		{DateTime: "bogus", AirTemp: "x"},
		{DateTime: "20161004153000", AirTemp: "15.5"},
	}

	out := NormalizeObservations(in)

	require.Len(t, out, 4)
	assert.Equal(t, "16", out[0].AirTemp)
	assert.Equal(t, "15.5", out[1].AirTemp)
	assert.Equal(t, "15", out[2].AirTemp, "first occurrence wins")
	assert.Equal(t, "x", out[3].AirTemp)
}

func TestNormalizeObservations_KeepsRecordsWithoutTime(t *testing.T) {
	in := []Observation{
		{DateTime: "", AirTemp: "a"},
		{DateTime: "20161004150000", AirTemp: "15"},
		{DateTime: "", AirTemp: "b"},
		{DateTime: "", AirTemp: "c"},
	}

	out := NormalizeObservations(in)

	require.Len(t, out, 4)
	assert.Equal(t, "15", out[0].AirTemp)
	assert.Equal(t, "a", out[1].AirTemp)
	assert.Equal(t, "b", out[2].AirTemp)
	assert.Equal(t, "c", out[3].AirTemp)
}

func TestNormalizeForecasts(t *testing.T) {
	in := []Forecast{
		{Time: "200", Temp: "b"},
		{Time: "100", Temp: "a"},
		{Time: "200", Temp: "dup"},
		{Time: "not-a-time", Temp: "z"},
	}

	out := NormalizeForecasts(in)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Temp)
	assert.Equal(t, "b", out[1].Temp)
}

func TestForecast_Row(t *testing.T) {
	f := Forecast{Time: "1475593200", Temp: "17.5", MinTemp: "15", MaxTemp: "18", Pressure: "1010", WindSpeed: "4.1"}

	row := f.Row(time.UTC)

	assert.Equal(t, []string{"03:00 PM Tue 04/10/16", "17.5", "15", "18", "1010", "4.1"}, row)
}

func TestParseForecastSite(t *testing.T) {
	site, err := ParseForecastSite("forecastio")
	require.NoError(t, err)
	assert.Equal(t, ForecastSiteForecastIO, site)

	_, err = ParseForecastSite("accuweather")
	assert.True(t, errors.IsConfigurationError(err))
}

func TestStation_ProductAndWMO(t *testing.T) {
	product, wmo, ok := Station{ID: "IDV60801.94866"}.ProductAndWMO()
	assert.True(t, ok)
	assert.Equal(t, "IDV60801", product)
	assert.Equal(t, "94866", wmo)

	_, _, ok = Station{ID: "94866"}.ProductAndWMO()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	valid := Station{ID: "IDV60801.94866", City: "Melbourne (Olympic Park)", StateCode: "VIC",
		Latitude: floatPtr(-37.8), Longitude: floatPtr(145.0)}
	assert.NoError(t, Validate(valid))

	missingCity := valid
	missingCity.City = ""
	assert.Error(t, Validate(missingCity))

	badLatitude := valid
	badLatitude.Latitude = floatPtr(-120)
	assert.Error(t, Validate(badLatitude))

	assert.Error(t, Validate(State{Code: "VIC"}))
}
