package models

import "strings"

// Station is a weather observation site. Identity is by ID.
type Station struct {
	ID             string   `json:"id" validate:"required"`
	City           string   `json:"city" validate:"required"`
	StateCode      string   `json:"state_code" validate:"required"`
	Latitude       *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ForecastSiteID string   `json:"forecast_site_id,omitempty"`
}

// String returns the display label
func (s Station) String() string {
	return s.City
}

// HasCoordinates reports whether both latitude and longitude are known
func (s Station) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// ProductAndWMO splits an id of the form "IDV60801.94866" into the observation product
// and the WMO station number.
func (s Station) ProductAndWMO() (product, wmo string, ok bool) {
	product, wmo, ok = strings.Cut(s.ID, ".")
	if !ok || product == "" || wmo == "" {
		return "", "", false
	}
	return product, wmo, true
}
