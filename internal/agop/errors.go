package agop

import "fmt"

// Code is a report-visible failure. Each value carries the historical
// console message.
type Code int

const (
	OK Code = iota
	ErrConversion
	ErrEphemerides
	ErrStation
	ErrInterpolation
	ErrNotInSight
	ErrNoAOS
	ErrStarsTooClose
	ErrCatalog
	ErrInvalidRequest
)

var codeMessages = map[Code]string{
	ErrConversion:     "UNABLE TO CONVERT VECTORS",
	ErrEphemerides:    "EPHEMERIDES NOT AVAILABLE",
	ErrStation:        "GROUND STATION NOT FOUND",
	ErrInterpolation:  "INTERPOLATION FAILURE",
	ErrNotInSight:     "LANDMARK NOT IN SIGHT",
	ErrNoAOS:          "NO AOS IN TIMESPAN",
	ErrStarsTooClose:  "STARS TOO CLOSE TO EACH OTHER",
	ErrCatalog:        "STAR NOT IN CATALOG",
	ErrInvalidRequest: "INVALID REQUEST",
}

var codeLabels = map[Code]string{
	OK:                "ok",
	ErrConversion:     "conversion",
	ErrEphemerides:    "ephemerides",
	ErrStation:        "station",
	ErrInterpolation:  "interpolation",
	ErrNotInSight:     "not_in_sight",
	ErrNoAOS:          "no_aos",
	ErrStarsTooClose:  "stars_too_close",
	ErrCatalog:        "catalog",
	ErrInvalidRequest: "invalid_request",
}

func (c Code) Error() string {
	if m, ok := codeMessages[c]; ok {
		return m
	}
	return ""
}

// Label is the short metric label for the code.
func (c Code) Label() string {
	if l, ok := codeLabels[c]; ok {
		return l
	}
	return "unknown"
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.Label()), nil
}

func (c *Code) UnmarshalText(text []byte) error {
	for k, v := range codeLabels {
		if v == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown code %q", text)
}
