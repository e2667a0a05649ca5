package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/souramoo/calorie-counter-vibe/stats"
)

var ErrInvalidDate = errors.New("date must be a valid date in ISO 8601 format")

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	stats.DateLayout,
}

// ParseISODate accepts an ISO 8601 date or timestamp.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseEntryDate parses an entry date and keeps only its calendar day,
// stored as midnight UTC.
func ParseEntryDate(s string) (time.Time, error) {
	t, err := ParseISODate(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
