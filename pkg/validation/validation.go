package validation

import (
	"regexp"
	"strings"
)

var (
	// Bureau of Meteorology ids are the observation product and WMO number, e.g. IDV60801.94866
	stationIDRegex = regexp.MustCompile(`^ID[A-Z][0-9]{5}\.[0-9]{5}$`)
	stateCodeRegex = regexp.MustCompile(`^[A-Z]{2,3}$`)
)

// IsValidStationID validates the station id format
func IsValidStationID(id string) bool {
	return stationIDRegex.MatchString(strings.TrimSpace(id))
}

// IsValidStateCode validates a state code such as VIC or NT
func IsValidStateCode(code string) bool {
	return stateCodeRegex.MatchString(strings.TrimSpace(code))
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
