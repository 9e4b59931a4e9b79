package terminal

import (
	"fmt"
	"io"
	"strconv"

	"weatherview.app/internal/core/observations"
	"weatherview.app/internal/models"
)

// ObservationsView prints the observation table and an air temperature sparkline
type ObservationsView struct {
	base
	listener observations.UserActionsListener
	latest   []models.Observation
}

func NewObservationsView(out io.Writer, width int) *ObservationsView {
	return &ObservationsView{base: newBase(out, width)}
}

func (v *ObservationsView) SetActionListener(listener observations.UserActionsListener) {
	v.listener = listener
}

func (v *ObservationsView) OnReady(station models.Station) {
	v.listener.LoadObservations(station, false)
}

// Refresh reloads the current station, bypassing the cache
func (v *ObservationsView) Refresh(station models.Station) {
	v.listener.LoadObservations(station, true)
}

func (v *ObservationsView) ShowObservations(list []models.Observation) {
	v.latest = list
	if len(list) == 0 {
		v.note("No observations available")
		return
	}

	name := list[0].StationName
	if name == "" {
		name = list[0].StationID
	}
	v.title("Observations: " + name)

	rows := make([][]string, 0, len(list))
	for _, o := range list {
		rows = append(rows, o.Row())
	}
	fmt.Fprintln(v.out, renderTable(v.width, models.ObservationColumns, rows))
}

// ShowChart draws air temperature oldest to newest
func (v *ObservationsView) ShowChart() {
	temps := make([]float64, 0, len(v.latest))
	for i := len(v.latest) - 1; i >= 0; i-- {
		t, err := strconv.ParseFloat(v.latest[i].AirTemp, 64)
		if err != nil {
			continue
		}
		temps = append(temps, t)
	}
	if len(temps) == 0 {
		return
	}
	fmt.Fprintln(v.out, "Air temp "+sparkline(temps, v.width-10))
}
