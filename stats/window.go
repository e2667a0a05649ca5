package stats

import (
	"strings"
	"time"
)

// Period selects a stats window relative to the current time.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists the accepted period values in display order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// ParsePeriod reports whether s names a known period. An empty string is
// accepted and means the default week window.
func ParsePeriod(s string) (Period, bool) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PeriodWeek, true
	}
	for _, known := range Periods {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Window is a [Start, End] time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns the window for p ending at now. Unknown periods fall
// back to the week window.
func WindowFor(p Period, now time.Time) Window {
	var start time.Time
	switch p {
	case PeriodDay:
		start = DayStart(now)
	case PeriodMonth:
		start = now.AddDate(0, -1, 0)
	case PeriodYear:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, 0, -7)
	}
	return Window{Start: start, End: now}
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Chart range presets.
const (
	RangeWeek      = "week"
	RangeMonth     = "month"
	RangeLastMonth = "lastMonth"
)

// PresetRange returns the first and last calendar day of a named chart
// range: the last 7 days including today, the current month to date, or
// the whole previous month. Unknown names fall back to the week range.
func PresetRange(name string, now time.Time) (time.Time, time.Time) {
	today := DayStart(now)
	switch name {
	case RangeMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first, today
	case RangeLastMonth:
		firstThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return firstThis.AddDate(0, -1, 0), firstThis.AddDate(0, 0, -1)
	default:
		return today.AddDate(0, 0, -6), today
	}
}
