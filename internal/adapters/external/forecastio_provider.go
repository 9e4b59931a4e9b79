package external

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// ForecastIOProviderAdapter implements ForecastProvider for the forecast.io hourly forecast
type ForecastIOProviderAdapter struct {
	apiKey  string
	baseURL string
	fetcher *HTTPFetcher
	logger  ports.Logger
}

// ForecastIOProviderParams holds parameters for creating the forecast.io provider
type ForecastIOProviderParams struct {
	APIKey     string
	BaseURL    string
	Client     HTTPClient
	Resilience ResilienceConfig
	Logger     ports.Logger
}

// ForecastIOResponse represents the response from the forecast.io API
type ForecastIOResponse struct {
	Latitude  jsonText `json:"latitude"`
	Longitude jsonText `json:"longitude"`
	Timezone  jsonText `json:"timezone"`
	Hourly    *struct {
		Data []ForecastIOHour `json:"data"`
	} `json:"hourly"`
}

// ForecastIOHour is one hourly data point
type ForecastIOHour struct {
	Time                jsonText `json:"time"`
	Summary             jsonText `json:"summary"`
	Temperature         jsonText `json:"temperature"`
	ApparentTemperature jsonText `json:"apparentTemperature"`
	Humidity            jsonText `json:"humidity"`
	Pressure            jsonText `json:"pressure"`
	WindSpeed           jsonText `json:"windSpeed"`
}

// NewForecastIOProviderAdapter creates a new forecast.io provider adapter
func NewForecastIOProviderAdapter(params ForecastIOProviderParams) *ForecastIOProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.forecast.io"
	}

	return &ForecastIOProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		fetcher: NewHTTPFetcher(HTTPFetcherParams{
			Name:       string(models.ForecastSiteForecastIO),
			Client:     params.Client,
			Resilience: params.Resilience,
			Logger:     params.Logger,
		}),
		logger: params.Logger,
	}
}

// GetForecasts retrieves hourly forecasts for the station coordinates
func (p *ForecastIOProviderAdapter) GetForecasts(ctx context.Context, station models.Station) ([]models.Forecast, error) {
	if !station.HasCoordinates() {
		return nil, errors.NewValidationError(fmt.Sprintf("station %s has no coordinates", station.ID))
	}

	lat := strconv.FormatFloat(*station.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(*station.Longitude, 'f', -1, 64)
	url := fmt.Sprintf("%s/forecast/%s/%s,%s?units=si&exclude=currently,minutely,daily,alerts,flags",
		p.baseURL, p.apiKey, lat, lon)

	var apiResp ForecastIOResponse
	if err := p.fetcher.GetJSON(ctx, url, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.Hourly == nil {
		return nil, errors.NewProtocolError("forecast.io response has no hourly block", nil)
	}

	p.logger.Debug("forecast.io forecasts decoded",
		ports.F("station_id", station.ID),
		ports.F("count", len(apiResp.Hourly.Data)))

	forecasts := make([]models.Forecast, 0, len(apiResp.Hourly.Data))
	for _, hour := range apiResp.Hourly.Data {
		forecasts = append(forecasts, models.Forecast{
			StationID:    station.ID,
			Provider:     models.ForecastSiteForecastIO,
			Time:         hour.Time.String(),
			Description:  hour.Summary.String(),
			Temp:         hour.Temperature.String(),
			ApparentTemp: hour.ApparentTemperature.String(),
			Humidity:     hour.Humidity.String(),
			Pressure:     hour.Pressure.String(),
			WindSpeed:    hour.WindSpeed.String(),
			Lat:          apiResp.Latitude.String(),
			Lon:          apiResp.Longitude.String(),
			Name:         station.City,
		})
	}
	return models.NormalizeForecasts(forecasts), nil
}

// GetProviderName returns the name of this forecast provider
func (p *ForecastIOProviderAdapter) GetProviderName() string {
	return string(models.ForecastSiteForecastIO)
}
