// Package models holds the plain value records shared by every layer: states, stations,
// observations and forecasts.
package models

// State is an administrative region grouping weather stations.
type State struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// String returns the display label
func (s State) String() string {
	return s.Name
}
