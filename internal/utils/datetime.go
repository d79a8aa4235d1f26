package utils

import (
	"strings"
	"sync/atomic"
	"time"
)

var displayLocation atomic.Pointer[time.Location]

// SetDisplayLocation sets the zone rendered dates are shown in. nil falls
// back to the local zone.
func SetDisplayLocation(loc *time.Location) {
	displayLocation.Store(loc)
}

// DisplayLocation returns the zone rendered dates are shown in
func DisplayLocation() *time.Location {
	if loc := displayLocation.Load(); loc != nil {
		return loc
	}
	return time.Local
}

// datetime-local input layouts, with and without seconds
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// LocalInputToRFC3339 converts a datetime-local form value, read in loc, to
// an RFC 3339 UTC timestamp. Values that do not parse are returned unchanged.
func LocalInputToRFC3339(value string, loc *time.Location) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return value
	}
	if loc == nil {
		loc = DisplayLocation()
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05.000Z")
		}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return value
}

// ParseLocalInput parses a datetime-local form value in loc
func ParseLocalInput(value string, loc *time.Location) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if loc == nil {
		loc = DisplayLocation()
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
