package terminal

import (
	"fmt"
	"io"

	"weatherview.app/internal/core/stations"
	"weatherview.app/internal/models"
)

// StationsView prints states, station lists and favourites as tables
type StationsView struct {
	base
	listener stations.UserActionsListener
}

func NewStationsView(out io.Writer, width int) *StationsView {
	return &StationsView{base: newBase(out, width)}
}

func (v *StationsView) SetActionListener(listener stations.UserActionsListener) {
	v.listener = listener
}

func (v *StationsView) Listener() stations.UserActionsListener {
	return v.listener
}

// OnReady shows the favourites, the first screen of the station browser
func (v *StationsView) OnReady() {
	v.listener.LoadFavouriteStations(false)
}

func (v *StationsView) ShowStates(states []models.State) {
	rows := make([][]string, 0, len(states))
	for _, s := range states {
		rows = append(rows, []string{s.Code, s.Name})
	}
	v.title("States")
	fmt.Fprintln(v.out, renderTable(v.width, []string{"Code", "Name"}, rows))
}

func (v *StationsView) ShowStations(list []models.Station) {
	v.title("Stations")
	v.stationTable(list, "No stations found")
}

func (v *StationsView) ShowFavourites(favourites []models.Station) {
	v.title("Favourites")
	v.stationTable(favourites, "No favourite stations yet")
}

func (v *StationsView) ShowObservationsUi(station models.Station) {
	v.note(fmt.Sprintf("Opening observations for %s (%s)", station.City, station.ID))
}

func (v *StationsView) stationTable(list []models.Station, empty string) {
	if len(list) == 0 {
		v.note(empty)
		return
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.ID, s.City, s.StateCode, coordinates(s)})
	}
	fmt.Fprintln(v.out, renderTable(v.width, []string{"ID", "City", "State", "Lat, Lon"}, rows))
}

func coordinates(s models.Station) string {
	if !s.HasCoordinates() {
		return ""
	}
	return fmt.Sprintf("%.2f, %.2f", *s.Latitude, *s.Longitude)
}
