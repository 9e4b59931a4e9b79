package stations

import (
	"github.com/google/uuid"
	"weatherview.app/internal/core/mvp"
	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
)

// Presenter mediates between the station browser and the repository.
// All methods run on the UI goroutine.
type Presenter struct {
	repo   ports.WeatherRepository
	view   View
	logger ports.Logger

	states     mvp.Request
	stations   mvp.Request
	favourites mvp.Request
}

// NewPresenter creates the presenter and registers it with the view
func NewPresenter(repo ports.WeatherRepository, view View, logger ports.Logger) *Presenter {
	p := &Presenter{repo: repo, view: view, logger: logger}
	view.SetActionListener(p)
	return p
}

// LoadStates fetches the state list and shows it on the view
func (p *Presenter) LoadStates(forceUpdate bool) {
	if p.view == nil {
		return
	}
	id := p.begin(&p.states)
	p.repo.GetStates(forceUpdate, func(states []models.State, err error) {
		if view := p.finish(&p.states, id, "load states", err); view != nil {
			view.ShowStates(states)
			view.SetProgressBar(false)
		}
	})
}

// LoadStations fetches the stations of stateCode
func (p *Presenter) LoadStations(stateCode string, forceUpdate bool) {
	if p.view == nil {
		return
	}
	id := p.begin(&p.stations)
	p.repo.GetStations(stateCode, forceUpdate, func(stations []models.Station, err error) {
		if view := p.finish(&p.stations, id, "load stations", err); view != nil {
			view.ShowStations(stations)
			view.SetProgressBar(false)
		}
	})
}

// LoadFavouriteStations fetches the stored favourites
func (p *Presenter) LoadFavouriteStations(forceUpdate bool) {
	if p.view == nil {
		return
	}
	id := p.begin(&p.favourites)
	p.repo.GetFavouriteStations(forceUpdate, func(favourites []models.Station, err error) {
		if view := p.finish(&p.favourites, id, "load favourites", err); view != nil {
			view.ShowFavourites(favourites)
			view.SetProgressBar(false)
		}
	})
}

// AddFavouriteStation stores station as a favourite
func (p *Presenter) AddFavouriteStation(station models.Station) {
	p.repo.AddFavouriteStation(station)
}

// RemoveFavouriteStation drops station from the favourites
func (p *Presenter) RemoveFavouriteStation(station models.Station) {
	p.repo.RemoveFavouriteStation(station)
}

// OpenObservations asks the view to show the observations of station
func (p *Presenter) OpenObservations(station models.Station) {
	if p.view == nil {
		return
	}
	p.view.ShowObservationsUi(station)
}

// Close detaches the view. Results arriving later are dropped.
func (p *Presenter) Close() {
	p.view = nil
}

func (p *Presenter) begin(req *mvp.Request) uuid.UUID {
	p.view.SetProgressBar(true)
	return req.Begin()
}

// finish pairs the progress toggle of a completed load. It returns the view only when
// the result is current and successful; the caller renders and then turns progress off.
func (p *Presenter) finish(req *mvp.Request, id uuid.UUID, operation string, err error) View {
	view := p.view
	if view == nil {
		return nil
	}
	if !req.IsCurrent(id) {
		p.logger.Debug("Dropping superseded result", ports.F("operation", operation))
		view.SetProgressBar(false)
		return nil
	}
	if err != nil {
		view.SetProgressBar(false)
		mvp.Fail(view, p.logger, operation, err)
		return nil
	}
	return view
}
