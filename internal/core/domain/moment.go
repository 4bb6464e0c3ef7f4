package domain

import (
	"fmt"
	"time"
)

// localLayouts are accepted for moments written without an offset.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseMoment reads an RFC 3339 timestamp or a local date-time in the IANA
// zone (system zone when empty). An RFC 3339 value is converted into zone
// when one is given. Empty or "now" yields now in zone.
func ParseMoment(value, zone string, now time.Time) (time.Time, error) {
	loc := time.Local
	if zone != "" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: time zone %q: %v", ErrInvalidInput, zone, err)
		}
		loc = l
	}

	if value == "" || value == "now" {
		return now.In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		if zone != "" {
			return t.In(loc), nil
		}
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse time %q", ErrInvalidInput, value)
}
