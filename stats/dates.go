package stats

import "time"

// DateLayout is the day-granularity wire format.
const DateLayout = "2006-01-02"

// DisplayLayout renders dates for chart labels, e.g. "January 2, 2006".
const DisplayLayout = "January 2, 2006"

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable instant of t's day.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DatesBetween lists every calendar date from start to end inclusive, in
// ascending order, formatted as YYYY-MM-DD. end is read in start's
// location. A start after end yields an empty slice.
func DatesBetween(start, end time.Time) []string {
	first := DayStart(start)
	last := DayStart(end.In(start.Location()))

	dates := []string{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// SeriesPoint is one day of a dense chart series.
type SeriesPoint struct {
	Date        string `json:"date"`
	Calories    int    `json:"calories"`
	DisplayDate string `json:"displayDate"`
}

// DenseSeries zero-fills entries into one point per calendar day between
// start and end. Entries on the same day are summed. Entries outside the
// range are ignored.
func DenseSeries(entries []Entry, start, end time.Time) []SeriesPoint {
	loc := start.Location()

	byDay := make(map[string]int, len(entries))
	for _, e := range entries {
		byDay[e.Date.In(loc).Format(DateLayout)] += e.Calories
	}

	dates := DatesBetween(start, end)
	points := make([]SeriesPoint, 0, len(dates))
	for _, d := range dates {
		day, _ := time.ParseInLocation(DateLayout, d, loc)
		points = append(points, SeriesPoint{
			Date:        d,
			Calories:    byDay[d],
			DisplayDate: day.Format(DisplayLayout),
		})
	}
	return points
}
