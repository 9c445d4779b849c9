// Package timezone holds the wall-clock conventions of the service. All
// dates and times are naive local values interpreted in one process-wide
// location.
package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = "2006-01-02T15:04"
)

var location atomic.Pointer[time.Location]

func init() {
	location.Store(time.Local)
}

// SetLocation changes the location used to interpret naive timestamps.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location.Store(loc)
	}
}

func Location() *time.Location {
	return location.Load()
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location())
}

// ParseDateTime accepts "2006-01-02T15:04", with optional seconds, or an
// RFC 3339 timestamp whose offset is ignored in favour of the wall clock.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{DateTimeLayout, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, Location()); err == nil {
			return t, nil
		}
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, Location()), nil
}

// ParseClock parses "HH:MM" into minutes after midnight. "24:00" is
// accepted as end of day.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil || len(s) != len(ClockLayout) {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
