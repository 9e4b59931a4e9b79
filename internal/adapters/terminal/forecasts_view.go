package terminal

import (
	"fmt"
	"io"
	"time"

	"weatherview.app/internal/core/forecasts"
	"weatherview.app/internal/models"
)

// ForecastsView prints the latest forecast, the forecast table and the daily chart
type ForecastsView struct {
	base
	listener forecasts.UserActionsListener
	chart    forecasts.ChartOptions
}

func NewForecastsView(out io.Writer, width int, chart forecasts.ChartOptions) *ForecastsView {
	return &ForecastsView{base: newBase(out, width), chart: chart}
}

func (v *ForecastsView) SetActionListener(listener forecasts.UserActionsListener) {
	v.listener = listener
}

func (v *ForecastsView) OnReady(station models.Station) {
	v.listener.LoadForecasts(station, false)
}

// SelectSite asks the presenter to switch provider
func (v *ForecastsView) SelectSite(site string) {
	v.listener.SetForecastSite(site)
}

func (v *ForecastsView) SetForecastSite(site string) {
	v.note("Forecast provider: " + site)
}

func (v *ForecastsView) ShowForecasts(list []models.Forecast) {
	if len(list) == 0 {
		v.note("No forecasts available")
	}
}

func (v *ForecastsView) ShowLatestForecast(f models.Forecast) {
	when := f.Time
	if t, err := f.At(v.location()); err == nil {
		when = t.Format(models.DisplayTimeLayout)
	}

	name := f.Name
	if name == "" {
		name = f.StationID
	}
	v.title(fmt.Sprintf("Forecast: %s (%s)", name, f.Provider))
	fmt.Fprintf(v.out, "%s  %s°C  %s\n", when, f.Temp, f.Description)
}

func (v *ForecastsView) ShowForecastTable(list []models.Forecast) {
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, f.Row(v.location()))
	}
	fmt.Fprintln(v.out, renderTable(v.width, models.ForecastColumns, rows))
}

func (v *ForecastsView) ShowForecastChart(list []models.Forecast) {
	chart := forecasts.BuildChart(list, v.chart)
	fmt.Fprint(v.out, RenderChart(chart, v.location(), v.width))
}

func (v *ForecastsView) location() *time.Location {
	if v.chart.Location == nil {
		return time.FixedZone("GMT", 0)
	}
	return v.chart.Location
}
