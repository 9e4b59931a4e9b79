package forecasts

import (
	"weatherview.app/internal/core/mvp"
	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
)

// Presenter loads forecasts for one selected station at a time
type Presenter struct {
	repo    ports.WeatherRepository
	view    View
	logger  ports.Logger
	station models.Station
	request mvp.Request
}

// NewPresenter creates the presenter and registers it with the view
func NewPresenter(repo ports.WeatherRepository, view View, logger ports.Logger) *Presenter {
	p := &Presenter{repo: repo, view: view, logger: logger}
	view.SetActionListener(p)
	return p
}

// SetForecastSite switches the provider used by later loads. Unknown sites are reported
// to the view and leave the current provider in place.
func (p *Presenter) SetForecastSite(site string) {
	if err := p.repo.SetForecastSite(site); err != nil {
		if p.view != nil {
			mvp.Fail(p.view, p.logger, "set forecast site", err)
		}
		return
	}
	if p.view != nil {
		p.view.SetForecastSite(site)
	}
}

// LoadForecasts selects station and fetches its forecasts. A non-empty result renders the
// list, the latest entry, the table and the chart in that order.
func (p *Presenter) LoadForecasts(station models.Station, forceUpdate bool) {
	if p.view == nil {
		return
	}
	p.station = station
	p.view.SetProgressBar(true)
	id := p.request.Begin()

	p.repo.GetForecasts(station, forceUpdate, func(forecasts []models.Forecast, err error) {
		view := p.view
		if view == nil {
			return
		}
		if !p.request.IsCurrent(id) || p.station.ID != station.ID {
			p.logger.Debug("Dropping superseded forecasts", ports.F("station_id", station.ID))
			view.SetProgressBar(false)
			return
		}
		if err != nil {
			view.SetProgressBar(false)
			mvp.Fail(view, p.logger, "load forecasts", err)
			return
		}

		view.ShowForecasts(forecasts)
		if len(forecasts) > 0 {
			view.ShowLatestForecast(forecasts[0])
			view.ShowForecastTable(forecasts)
			view.ShowForecastChart(forecasts)
		}
		view.SetProgressBar(false)
	})
}

// Station returns the current selection
func (p *Presenter) Station() models.Station {
	return p.station
}

// Close detaches the view. Results arriving later are dropped.
func (p *Presenter) Close() {
	p.view = nil
}
