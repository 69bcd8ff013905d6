// Package dateutils provides date and time operations used throughout the
// application, in particular OFX timestamp parsing.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	date "github.com/joyt/godate"
)

// DateLayoutISO is the canonical date layout for rendered output.
const DateLayoutISO = "2006-01-02"

// OFX timestamp layouts, longest first. Institutions truncate freely, so all
// prefixes of the full form are accepted.
var ofxLayouts = []string{
	"20060102150405.000",
	"20060102150405",
	"200601021504",
	"2006010215",
	"20060102",
}

// ParseOFXDate parses an OFX timestamp such as "20240105120000.000[0:GMT]",
// "20240105120000" or "20240105". The bracketed timezone suffix, when
// present, is dropped; OFX times are treated as naive wall-clock values.
// Values that do not look like OFX timestamps fall back to lenient parsing.
func ParseOFXDate(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}

	if idx := strings.IndexByte(cleaned, '['); idx > 0 {
		cleaned = cleaned[:idx]
	}

	for _, layout := range ofxLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}

	// Some institutions emit dates in non-OFX layouts.
	if t, err := date.Parse(cleaned); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse OFX date: %s", value)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// DayOf truncates a timestamp to midnight of its day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDay returns midnight of the day after the given timestamp.
func NextDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1)
}
