package external

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"weatherview.app/internal/models"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// OpenWeatherMapProviderAdapter implements ForecastProvider for the OpenWeatherMap 5 day / 3 hour forecast
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	fetcher *HTTPFetcher
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey     string
	BaseURL    string
	Client     HTTPClient
	Resilience ResilienceConfig
	Logger     ports.Logger
}

// OpenWeatherMapResponse represents the response from OpenWeatherMap API
type OpenWeatherMapResponse struct {
	List *[]OpenWeatherMapItem `json:"list"`
	City struct {
		Name  jsonText `json:"name"`
		Coord struct {
			Lat jsonText `json:"lat"`
			Lon jsonText `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
}

// OpenWeatherMapItem is one three-hourly forecast entry
type OpenWeatherMapItem struct {
	Dt   jsonText `json:"dt"`
	Main struct {
		Temp      jsonText `json:"temp"`
		FeelsLike jsonText `json:"feels_like"`
		TempMin   jsonText `json:"temp_min"`
		TempMax   jsonText `json:"temp_max"`
		Pressure  jsonText `json:"pressure"`
		Humidity  jsonText `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description jsonText `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed jsonText `json:"speed"`
	} `json:"wind"`
	Rain *struct {
		ThreeHours *jsonText `json:"3h"`
	} `json:"rain"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		fetcher: NewHTTPFetcher(HTTPFetcherParams{
			Name:       string(models.ForecastSiteOpenWeatherMap),
			Client:     params.Client,
			Resilience: params.Resilience,
			Logger:     params.Logger,
		}),
		logger: params.Logger,
	}
}

// GetForecasts retrieves forecasts from OpenWeatherMap
func (p *OpenWeatherMapProviderAdapter) GetForecasts(ctx context.Context, station models.Station) ([]models.Forecast, error) {
	query := url.Values{}
	if station.HasCoordinates() {
		query.Set("lat", strconv.FormatFloat(*station.Latitude, 'f', -1, 64))
		query.Set("lon", strconv.FormatFloat(*station.Longitude, 'f', -1, 64))
	} else {
		city := station.ForecastSiteID
		if city == "" {
			city = station.City
		}
		if city == "" {
			return nil, errors.NewValidationError("station has neither coordinates nor a city")
		}
		query.Set("q", city+",AU")
	}
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")

	var apiResp OpenWeatherMapResponse
	if err := p.fetcher.GetJSON(ctx, p.baseURL+"/forecast?"+query.Encode(), &apiResp); err != nil {
		return nil, err
	}
	if apiResp.List == nil {
		return nil, errors.NewProtocolError("OpenWeatherMap response has no forecast list", nil)
	}

	p.logger.Debug("OpenWeatherMap forecasts decoded",
		ports.F("station_id", station.ID),
		ports.F("count", len(*apiResp.List)))

	forecasts := make([]models.Forecast, 0, len(*apiResp.List))
	for _, item := range *apiResp.List {
		forecasts = append(forecasts, p.toForecast(station, apiResp, item))
	}
	return models.NormalizeForecasts(forecasts), nil
}

func (p *OpenWeatherMapProviderAdapter) toForecast(station models.Station, resp OpenWeatherMapResponse, item OpenWeatherMapItem) models.Forecast {
	description := ""
	if len(item.Weather) > 0 {
		description = item.Weather[0].Description.String()
	}

	var rain *string
	if item.Rain != nil {
		rain = item.Rain.ThreeHours.ptr()
	}

	return models.Forecast{
		StationID:    station.ID,
		Provider:     models.ForecastSiteOpenWeatherMap,
		Time:         item.Dt.String(),
		Description:  description,
		Temp:         item.Main.Temp.String(),
		ApparentTemp: item.Main.FeelsLike.String(),
		MinTemp:      item.Main.TempMin.String(),
		MaxTemp:      item.Main.TempMax.String(),
		Humidity:     item.Main.Humidity.String(),
		Pressure:     item.Main.Pressure.String(),
		WindSpeed:    item.Wind.Speed.String(),
		Rain:         rain,
		Lat:          resp.City.Coord.Lat.String(),
		Lon:          resp.City.Coord.Lon.String(),
		Name:         resp.City.Name.String(),
	}
}

// GetProviderName returns the name of this forecast provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return string(models.ForecastSiteOpenWeatherMap)
}
