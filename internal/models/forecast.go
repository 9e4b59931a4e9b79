package models

import (
	"sort"
	"strconv"
	"time"
)

// Forecast is a provider prediction for one instant. Time holds POSIX seconds as text.
type Forecast struct {
	StationID    string       `json:"station_id"`
	Provider     ForecastSite `json:"provider"`
	Time         string       `json:"time"`
	Description  string       `json:"description"`
	Temp         string       `json:"temp"`
	ApparentTemp string       `json:"apparent_temp,omitempty"`
	MinTemp      string       `json:"min_temp,omitempty"`
	MaxTemp      string       `json:"max_temp,omitempty"`
	Humidity     string       `json:"humidity"`
	Pressure     string       `json:"pressure"`
	WindSpeed    string       `json:"wind_speed"`
	Rain         *string      `json:"rain,omitempty"`
	Lat          string       `json:"lat,omitempty"`
	Lon          string       `json:"lon,omitempty"`
	Name         string       `json:"name,omitempty"`
}

// Unix parses Time as POSIX seconds
func (f Forecast) Unix() (int64, error) {
	return strconv.ParseInt(f.Time, 10, 64)
}

// At returns the forecast instant in loc
func (f Forecast) At(loc *time.Location) (time.Time, error) {
	secs, err := f.Unix()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).In(loc), nil
}

// ForecastColumns are the table headers matching Forecast.Row.
var ForecastColumns = []string{"Date Time", "Temp", "Min Temp", "Max Temp", "Pressure", "Wind Speed"}

// Row returns the table cells for this forecast with the time rendered in loc.
func (f Forecast) Row(loc *time.Location) []string {
	when := f.Time
	if t, err := f.At(loc); err == nil {
		when = t.Format(DisplayTimeLayout)
	}
	return []string{when, f.Temp, f.MinTemp, f.MaxTemp, f.Pressure, f.WindSpeed}
}

// NormalizeForecasts drops records repeating an earlier Time and orders the rest by time.
// Records with an unparseable Time are dropped.
func NormalizeForecasts(in []Forecast) []Forecast {
	seen := make(map[string]struct{}, len(in))
	out := make([]Forecast, 0, len(in))
	for _, f := range in {
		if _, err := f.Unix(); err != nil {
			continue
		}
		if _, dup := seen[f.Time]; dup {
			continue
		}
		seen[f.Time] = struct{}{}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := out[i].Unix()
		tj, _ := out[j].Unix()
		return ti < tj
	})
	return out
}
