package observations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/mocks"
	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

type recordingView struct {
	listener     UserActionsListener
	calls        []string
	observations []models.Observation
}

func (v *recordingView) SetActionListener(l UserActionsListener) { v.listener = l }
func (v *recordingView) SetProgressBar(active bool) {
	v.calls = append(v.calls, fmt.Sprintf("progress:%t", active))
}
func (v *recordingView) OnReady(station models.Station) { v.calls = append(v.calls, "ready") }
func (v *recordingView) ShowObservations(observations []models.Observation) {
	v.observations = observations
	v.calls = append(v.calls, "observations")
}
func (v *recordingView) ShowChart() { v.calls = append(v.calls, "chart") }

var (
	melbourne = models.Station{ID: "IDV60801.94866", City: "Melbourne (Olympic Park)", StateCode: "VIC"}
	sydney    = models.Station{ID: "IDN60901.94768", City: "Sydney (Observatory Hill)", StateCode: "NSW"}
)

func newPresenter(t *testing.T) (*Presenter, *mocks.WeatherRepository, *recordingView) {
	repo := &mocks.WeatherRepository{}
	repo.Test(t)
	view := &recordingView{}
	p := NewPresenter(repo, view, mocks.NewQuietLogger(t))
	require.Same(t, p, view.listener)
	return p, repo, view
}

func TestPresenter_LoadObservationsRendersListThenChart(t *testing.T) {
	p, repo, view := newPresenter(t)
	observations := []models.Observation{
		models.NewObservation(models.RawObservation{Name: "Melbourne", LocalDateTimeFull: "20240101120000", Cloud: "-"}),
	}
	repo.On("GetObservations", melbourne, true, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(2).(ports.ObservationsCallback)(observations, nil)
	}).Once()

	p.LoadObservations(melbourne, true)

	assert.Equal(t, []string{"progress:true", "observations", "chart", "progress:false"}, view.calls)
	require.Len(t, view.observations, 1)
	assert.Equal(t, "Clear", view.observations[0].Cloud)
	assert.Equal(t, melbourne, p.Station())
}

func TestPresenter_ProtocolErrorSkipsRendering(t *testing.T) {
	p, repo, view := newPresenter(t)
	repo.On("GetObservations", melbourne, false, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(2).(ports.ObservationsCallback)(nil, errors.NewProtocolError("bad payload", nil))
	}).Once()

	p.LoadObservations(melbourne, false)

	assert.Equal(t, []string{"progress:true", "progress:false"}, view.calls)
	assert.Nil(t, view.observations)
}

func TestPresenter_DropsResultForPreviousStation(t *testing.T) {
	p, repo, view := newPresenter(t)
	pending := map[string]ports.ObservationsCallback{}
	repo.On("GetObservations", mock.Anything, false, mock.Anything).Run(func(args mock.Arguments) {
		pending[args.Get(0).(models.Station).ID] = args.Get(2).(ports.ObservationsCallback)
	}).Twice()

	p.LoadObservations(melbourne, false)
	p.LoadObservations(sydney, false)

	pending[melbourne.ID]([]models.Observation{{StationName: "Melbourne"}}, nil)
	assert.Nil(t, view.observations)

	pending[sydney.ID]([]models.Observation{{StationName: "Sydney"}}, nil)
	require.Len(t, view.observations, 1)
	assert.Equal(t, "Sydney", view.observations[0].StationName)

	assert.Equal(t, []string{
		"progress:true", "progress:true",
		"progress:false",
		"observations", "chart", "progress:false",
	}, view.calls)
}

func TestPresenter_CloseIgnoresLateResults(t *testing.T) {
	p, repo, view := newPresenter(t)
	var pending ports.ObservationsCallback
	repo.On("GetObservations", melbourne, false, mock.Anything).Run(func(args mock.Arguments) {
		pending = args.Get(2).(ports.ObservationsCallback)
	}).Once()

	p.LoadObservations(melbourne, false)
	p.Close()
	pending([]models.Observation{{StationName: "Melbourne"}}, nil)

	assert.Equal(t, []string{"progress:true"}, view.calls)
}
