package models

import (
	"sort"
	"time"
)

// ObservationTimeLayout is the layout of local_date_time_full, yyyyMMddHHmmss.
const ObservationTimeLayout = "20060102150405"

// DisplayTimeLayout renders timestamps in tables, e.g. "03:00 PM Mon 02/01/06".
const DisplayTimeLayout = "03:04 PM Mon 02/01/06"

// Observation is a point-in-time measurement reported by the Bureau of Meteorology.
// Numeric values stay in their textual form because the service mixes numbers with
// markers such as "-" and "Trace".
type Observation struct {
	StationID     string `json:"station_id"`
	StationName   string `json:"station_name"`
	DateTime      string `json:"date_time"`
	AirTemp       string `json:"air_temp"`
	ApparentTemp  string `json:"apparent_temp"`
	DewPoint      string `json:"dew_point"`
	Humidity      string `json:"humidity"`
	Rain          string `json:"rain"`
	Cloud         string `json:"cloud"`
	WindDirection string `json:"wind_direction"`
	WindSpeedKmh  string `json:"wind_speed_kmh"`
	WindGustKmh   string `json:"wind_gust_kmh"`
	WindSpeedKt   string `json:"wind_speed_kt"`
	WindGustKt    string `json:"wind_gust_kt"`
	PressureQnh   string `json:"pressure_qnh"`
	PressureMsl   string `json:"pressure_msl"`
	DeltaT        string `json:"delta_t"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
}

// RawObservation carries the service fields before normalisation.
type RawObservation struct {
	WMO               string
	Name              string
	LocalDateTimeFull string
	Lat               string
	Lon               string
	AirTemp           string
	ApparentT         string
	Cloud             string
	DeltaT            string
	Dewpt             string
	GustKmh           string
	Press             string
	PressMsl          string
	PressQnh          string
	RainTrace         string
	RelHum            string
	WindDir           string
	WindSpdKmh        string
	WindSpdKt         string
}

// NewObservation normalises a raw record. The only sentinel rewrite is cloud "-" to "Clear".
func NewObservation(raw RawObservation) Observation {
	cloud := raw.Cloud
	if cloud == "-" {
		cloud = "Clear"
	}

	return Observation{
		StationID:     raw.WMO,
		StationName:   raw.Name,
		DateTime:      raw.LocalDateTimeFull,
		AirTemp:       raw.AirTemp,
		ApparentTemp:  raw.ApparentT,
		DewPoint:      raw.Dewpt,
		Humidity:      raw.RelHum,
		Rain:          raw.RainTrace,
		Cloud:         cloud,
		WindDirection: raw.WindDir,
		WindSpeedKmh:  raw.WindSpdKmh,
		WindGustKmh:   raw.GustKmh,
		WindSpeedKt:   raw.WindSpdKt,
		WindGustKt:    "-",
		PressureQnh:   raw.PressQnh,
		PressureMsl:   raw.PressMsl,
		DeltaT:        raw.DeltaT,
		Latitude:      raw.Lat,
		Longitude:     raw.Lon,
	}
}

// Time parses DateTime as a wall clock reading. The service reports local time without a
// zone, so the result is in UTC purely as a container.
func (o Observation) Time() (time.Time, error) {
	return time.Parse(ObservationTimeLayout, o.DateTime)
}

// ObservationColumns are the table headers matching Observation.Row.
var ObservationColumns = []string{
	"Date Time", "Temp", "App Temp", "Dew Point", "Rel Hum", "Delta-T", "Wind Dir",
	"Wind Spd Kmh", "Wind Gust Kmh", "Wind Spd Kts", "Wind Gust Kts", "Press QNH", "Press MSL", "Rain Since 9am",
}

// Row returns the table cells for this observation.
func (o Observation) Row() []string {
	when := o.DateTime
	if t, err := o.Time(); err == nil {
		when = t.Format(DisplayTimeLayout)
	}

	return []string{
		when, o.AirTemp, o.ApparentTemp, o.DewPoint, o.Humidity, o.DeltaT, o.WindDirection,
		o.WindSpeedKmh, o.WindGustKmh, o.WindSpeedKt, o.WindGustKt, o.PressureQnh, o.PressureMsl, o.Rain,
	}
}

// NormalizeObservations drops records repeating an earlier DateTime and orders the rest
// newest first. Records with an empty or unparseable DateTime are never treated as duplicates
// and keep their relative position at the end.
func NormalizeObservations(in []Observation) []Observation {
	seen := make(map[string]struct{}, len(in))
	out := make([]Observation, 0, len(in))
	for _, o := range in {
		if o.DateTime != "" {
			if _, dup := seen[o.DateTime]; dup {
				continue
			}
			seen[o.DateTime] = struct{}{}
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, errI := out[i].Time()
		tj, errJ := out[j].Time()
		switch {
		case errI != nil:
			return false
		case errJ != nil:
			return true
		default:
			return ti.After(tj)
		}
	})
	return out
}
