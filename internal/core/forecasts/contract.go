// Package forecasts presents provider forecasts for the selected station and derives
// the chart series drawn from them.
package forecasts

import "weatherview.app/internal/models"

// View shows the forecasts of one station
type View interface {
	SetActionListener(listener UserActionsListener)
	SetProgressBar(active bool)
	OnReady(station models.Station)
	SetForecastSite(site string)
	ShowForecasts(forecasts []models.Forecast)
	ShowLatestForecast(forecast models.Forecast)
	ShowForecastTable(forecasts []models.Forecast)
	ShowForecastChart(forecasts []models.Forecast)
}

// UserActionsListener is what the view calls back into
type UserActionsListener interface {
	LoadForecasts(station models.Station, forceUpdate bool)
	SetForecastSite(site string)
}
