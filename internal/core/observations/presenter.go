package observations

import (
	"weatherview.app/internal/core/mvp"
	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
)

// Presenter loads observations for one selected station at a time
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

// LoadObservations selects station and fetches its observations. On success the view
// receives the full list and then draws the chart.
func (p *Presenter) LoadObservations(station models.Station, forceUpdate bool) {
	if p.view == nil {
		return
	}
	p.station = station
	p.view.SetProgressBar(true)
	id := p.request.Begin()

	p.repo.GetObservations(station, forceUpdate, func(observations []models.Observation, err error) {
		view := p.view
		if view == nil {
			return
		}
		if !p.request.IsCurrent(id) || p.station.ID != station.ID {
			p.logger.Debug("Dropping superseded observations", ports.F("station_id", station.ID))
			view.SetProgressBar(false)
			return
		}
		if err != nil {
			view.SetProgressBar(false)
			mvp.Fail(view, p.logger, "load observations", err)
			return
		}

		view.ShowObservations(observations)
		view.ShowChart()
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
