// Package observations presents the recent observations of the selected station.
package observations

import "weatherview.app/internal/models"

// View shows the observations of one station
type View interface {
	SetActionListener(listener UserActionsListener)
	SetProgressBar(active bool)
	OnReady(station models.Station)
	ShowObservations(observations []models.Observation)
	ShowChart()
}

// UserActionsListener is what the view calls back into
type UserActionsListener interface {
	LoadObservations(station models.Station, forceUpdate bool)
}
