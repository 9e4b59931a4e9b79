package models

import (
	"fmt"

	"weatherview.app/pkg/errors"
)

// ForecastSite identifies a remote forecast provider.
type ForecastSite string

const (
	ForecastSiteOpenWeatherMap ForecastSite = "openweathermap"
	ForecastSiteForecastIO     ForecastSite = "forecastio"
)

// ForecastSites lists every recognised provider in preference order.
var ForecastSites = []ForecastSite{ForecastSiteOpenWeatherMap, ForecastSiteForecastIO}

// ParseForecastSite validates a provider id.
func ParseForecastSite(s string) (ForecastSite, error) {
	site := ForecastSite(s)
	if !site.IsValid() {
		return "", errors.NewConfigurationError(fmt.Sprintf("unknown forecast site %q", s), nil)
	}
	return site, nil
}

// IsValid reports whether the site is one of the recognised providers
func (s ForecastSite) IsValid() bool {
	switch s {
	case ForecastSiteOpenWeatherMap, ForecastSiteForecastIO:
		return true
	default:
		return false
	}
}

func (s ForecastSite) String() string {
	return string(s)
}
