package forecasts

import (
	"math"
	"strconv"
	"strings"
	"time"

	"weatherview.app/internal/models"
)

const (
	nineAM  = 9
	threePM = 15
)

// Sample is one temperature point of a chart series
type Sample struct {
	Time time.Time
	Temp float64
}

// Chart is the series a forecast chart draws. Start and End bound the forecast interval.
type Chart struct {
	Temps   []Sample
	Min     []Sample
	Max     []Sample
	NineAM  []Sample
	ThreePM []Sample
	Start   time.Time
	End     time.Time
}

// ChartOptions controls day partitioning and unparseable temperatures.
// A nil Location means GMT.
type ChartOptions struct {
	Location            *time.Location
	ZeroFillUnparseable bool
}

type dayExtremes struct {
	min Sample
	max Sample
}

// BuildChart derives the chart series from forecasts. Records repeating an earlier time
// are ignored, days are calendar days in opts.Location, and the daily minimum and maximum
// are the earliest samples reaching them.
func BuildChart(forecasts []models.Forecast, opts ChartOptions) Chart {
	loc := opts.Location
	if loc == nil {
		loc = gmt
	}

	var chart Chart
	for _, f := range models.NormalizeForecasts(forecasts) {
		at, err := f.At(loc)
		if err != nil {
			continue
		}
		temp, ok := parseTemp(f.Temp, opts.ZeroFillUnparseable)
		if !ok {
			continue
		}
		chart.Temps = append(chart.Temps, Sample{Time: at, Temp: temp})
	}

	if len(chart.Temps) == 0 {
		return chart
	}
	chart.Start = chart.Temps[0].Time
	chart.End = chart.Temps[len(chart.Temps)-1].Time

	var days []dayExtremes
	var current string
	for _, s := range chart.Temps {
		switch s.Time.Hour() {
		case nineAM:
			chart.NineAM = append(chart.NineAM, s)
		case threePM:
			chart.ThreePM = append(chart.ThreePM, s)
		}

		day := s.Time.Format(time.DateOnly)
		if day != current || len(days) == 0 {
			current = day
			days = append(days, dayExtremes{min: s, max: s})
			continue
		}
		last := &days[len(days)-1]
		if s.Temp < last.min.Temp {
			last.min = s
		}
		if s.Temp > last.max.Temp {
			last.max = s
		}
	}

	for _, d := range days {
		chart.Min = append(chart.Min, d.min)
		chart.Max = append(chart.Max, d.max)
	}
	return chart
}

// Days returns the number of calendar days the chart spans
func (c Chart) Days() int {
	return len(c.Min)
}

var gmt = time.FixedZone("GMT", 0)

func parseTemp(raw string, zeroFill bool) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if zeroFill {
			return 0, true
		}
		return 0, false
	}
	return v, true
}
