// Package stations presents the state list, the stations of a state and the favourites.
package stations

import "weatherview.app/internal/models"

// View is the station browser
type View interface {
	SetActionListener(listener UserActionsListener)
	SetProgressBar(active bool)
	OnReady()
	ShowStates(states []models.State)
	ShowStations(stations []models.Station)
	ShowFavourites(favourites []models.Station)
	ShowObservationsUi(station models.Station)
}

// UserActionsListener is what the view calls back into
type UserActionsListener interface {
	LoadStates(forceUpdate bool)
	LoadStations(stateCode string, forceUpdate bool)
	LoadFavouriteStations(forceUpdate bool)
	AddFavouriteStation(station models.Station)
	RemoveFavouriteStation(station models.Station)
	OpenObservations(station models.Station)
}
