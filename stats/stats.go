// Package stats holds the calorie aggregation logic: period statistics,
// reporting windows and the dense per-day series used for charting.
//
// Everything here is a pure function of its inputs. Callers fetch entries
// from storage first and hand them over as plain values.
package stats

import "time"

// Entry is the slice of a stored calorie entry the aggregations need.
type Entry struct {
	Date     time.Time
	Calories int
}

// DayValue is a single day's calorie figure.
type DayValue struct {
	Date     time.Time `json:"date"`
	Calories int       `json:"calories"`
}

// PeriodStats is the derived summary returned by the stats endpoint.
// The JSON field names are part of the public API.
type PeriodStats struct {
	DailyAverage  float64   `json:"dailyAverage"`
	TotalEntries  int       `json:"totalEntries"`
	PeriodTotal   int       `json:"periodTotal"`
	PeriodAverage float64   `json:"periodAverage"`
	HighestDay    *DayValue `json:"highestDay"`
	LowestDay     *DayValue `json:"lowestDay"`
}

// Compute summarises a user's history. all is the complete entry history and
// feeds the lifetime figures; period is the subset inside the requested
// window. An empty period yields the zero PeriodStats with nil extrema.
//
// Ties for highest/lowest go to the first entry in input order.
func Compute(all, period []Entry) PeriodStats {
	if len(period) == 0 {
		return PeriodStats{}
	}

	var out PeriodStats

	out.TotalEntries = len(all)
	out.DailyAverage = average(sum(all), len(all))

	out.PeriodTotal = sum(period)
	out.PeriodAverage = average(out.PeriodTotal, len(period))

	hi, lo := period[0], period[0]
	for _, e := range period[1:] {
		if e.Calories > hi.Calories {
			hi = e
		}
		if e.Calories < lo.Calories {
			lo = e
		}
	}
	out.HighestDay = &DayValue{Date: hi.Date, Calories: hi.Calories}
	out.LowestDay = &DayValue{Date: lo.Date, Calories: lo.Calories}

	return out
}

func sum(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	return total
}

func average(total, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(total) / float64(n)
}
