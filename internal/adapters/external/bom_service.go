package external

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

//go:embed data/stations.json
var embeddedStations []byte

var bomStates = []models.State{
	{Code: "ACT", Name: "Australian Capital Territory"},
	{Code: "NSW", Name: "New South Wales"},
	{Code: "NT", Name: "Northern Territory"},
	{Code: "QLD", Name: "Queensland"},
	{Code: "SA", Name: "South Australia"},
	{Code: "TAS", Name: "Tasmania"},
	{Code: "VIC", Name: "Victoria"},
	{Code: "WA", Name: "Western Australia"},
}

// BomServiceAdapter serves states, stations and observations from the Bureau of Meteorology
type BomServiceAdapter struct {
	baseURL     string
	stationsURL string
	fetcher     *HTTPFetcher
	directory   []models.Station
	logger      ports.Logger
}

// BomServiceParams holds parameters for creating the BoM adapter
type BomServiceParams struct {
	BaseURL     string
	StationsURL string
	UserAgent   string
	Client      HTTPClient
	Resilience  ResilienceConfig
	Logger      ports.Logger
}

type stationDirectory struct {
	Stations []struct {
		ID    string   `json:"id"`
		City  string   `json:"city"`
		State string   `json:"state"`
		Lat   *float64 `json:"lat"`
		Lon   *float64 `json:"lon"`
		Site  string   `json:"forecast_site_id"`
	} `json:"stations"`
}

type bomObservationsResponse struct {
	Observations *struct {
		Data []bomObservation `json:"data"`
	} `json:"observations"`
}

type bomObservation struct {
	WMO               jsonText `json:"wmo"`
	Name              jsonText `json:"name"`
	LocalDateTimeFull jsonText `json:"local_date_time_full"`
	Lat               jsonText `json:"lat"`
	Lon               jsonText `json:"lon"`
	AirTemp           jsonText `json:"air_temp"`
	ApparentT         jsonText `json:"apparent_t"`
	Cloud             jsonText `json:"cloud"`
	DeltaT            jsonText `json:"delta_t"`
	Dewpt             jsonText `json:"dewpt"`
	GustKmh           jsonText `json:"gust_kmh"`
	Press             jsonText `json:"press"`
	PressMsl          jsonText `json:"press_msl"`
	PressQnh          jsonText `json:"press_qnh"`
	RainTrace         jsonText `json:"rain_trace"`
	RelHum            jsonText `json:"rel_hum"`
	WindDir           jsonText `json:"wind_dir"`
	WindSpdKmh        jsonText `json:"wind_spd_kmh"`
	WindSpdKt         jsonText `json:"wind_spd_kt"`
}

func (o bomObservation) raw() models.RawObservation {
	return models.RawObservation{
		WMO:               o.WMO.String(),
		Name:              o.Name.String(),
		LocalDateTimeFull: o.LocalDateTimeFull.String(),
		Lat:               o.Lat.String(),
		Lon:               o.Lon.String(),
		AirTemp:           o.AirTemp.String(),
		ApparentT:         o.ApparentT.String(),
		Cloud:             o.Cloud.String(),
		DeltaT:            o.DeltaT.String(),
		Dewpt:             o.Dewpt.String(),
		GustKmh:           o.GustKmh.String(),
		Press:             o.Press.String(),
		PressMsl:          o.PressMsl.String(),
		PressQnh:          o.PressQnh.String(),
		RainTrace:         o.RainTrace.String(),
		RelHum:            o.RelHum.String(),
		WindDir:           o.WindDir.String(),
		WindSpdKmh:        o.WindSpdKmh.String(),
		WindSpdKt:         o.WindSpdKt.String(),
	}
}

// NewBomServiceAdapter creates the adapter and loads the embedded station directory
func NewBomServiceAdapter(params BomServiceParams) (*BomServiceAdapter, error) {
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://www.bom.gov.au"
	}

	var dir stationDirectory
	if err := json.Unmarshal(embeddedStations, &dir); err != nil {
		return nil, errors.NewConfigurationError("embedded station directory is malformed", err)
	}

	adapter := &BomServiceAdapter{
		baseURL:     baseURL,
		stationsURL: params.StationsURL,
		fetcher: NewHTTPFetcher(HTTPFetcherParams{
			Name:       "bom",
			Client:     params.Client,
			UserAgent:  params.UserAgent,
			Resilience: params.Resilience,
			Logger:     params.Logger,
		}),
		logger: params.Logger,
	}
	adapter.directory = adapter.toStations(dir)

	return adapter, nil
}

// FetchStates returns the state table in display order
func (b *BomServiceAdapter) FetchStates(ctx context.Context) ([]models.State, error) {
	states := make([]models.State, len(bomStates))
	copy(states, bomStates)
	return states, nil
}

// FetchStations returns the stations of one state, from the remote directory when configured
func (b *BomServiceAdapter) FetchStations(ctx context.Context, stateCode string) ([]models.Station, error) {
	if stateCode == "" {
		return nil, errors.NewValidationError("state code cannot be empty")
	}
	if !knownState(stateCode) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("unknown state %q", stateCode))
	}

	directory := b.directory
	if b.stationsURL != "" {
		var dir stationDirectory
		if err := b.fetcher.GetJSON(ctx, b.stationsURL, &dir); err != nil {
			return nil, err
		}
		directory = b.toStations(dir)
	}

	stations := make([]models.Station, 0)
	for _, s := range directory {
		if s.StateCode == stateCode {
			stations = append(stations, s)
		}
	}
	return stations, nil
}

// FetchObservations returns the recent observations of a station, newest first
func (b *BomServiceAdapter) FetchObservations(ctx context.Context, station models.Station) ([]models.Observation, error) {
	product, wmo, ok := station.ProductAndWMO()
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("station id %q is not of the form PRODUCT.WMO", station.ID))
	}

	url := fmt.Sprintf("%s/fwo/%s/%s.%s.json", b.baseURL, product, product, wmo)

	var resp bomObservationsResponse
	if err := b.fetcher.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.Observations == nil {
		return nil, errors.NewProtocolError("bom response has no observations object", nil)
	}

	observations := make([]models.Observation, 0, len(resp.Observations.Data))
	for _, o := range resp.Observations.Data {
		observations = append(observations, models.NewObservation(o.raw()))
	}
	return models.NormalizeObservations(observations), nil
}

func (b *BomServiceAdapter) toStations(dir stationDirectory) []models.Station {
	stations := make([]models.Station, 0, len(dir.Stations))
	for _, s := range dir.Stations {
		station := models.Station{
			ID:             s.ID,
			City:           s.City,
			StateCode:      s.State,
			Latitude:       s.Lat,
			Longitude:      s.Lon,
			ForecastSiteID: s.Site,
		}
		if err := models.Validate(station); err != nil {
			b.logger.Warn("Skipping invalid station", ports.F("station_id", s.ID), ports.F("error", err.Error()))
			continue
		}
		stations = append(stations, station)
	}
	return stations
}

func knownState(code string) bool {
	for _, s := range bomStates {
		if s.Code == code {
			return true
		}
	}
	return false
}
