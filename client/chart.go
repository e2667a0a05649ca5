package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/souramoo/calorie-counter-vibe/stats"
)

// WriteBarChart draws one horizontal bar per day, scaled so the largest
// day spans width cells.
func WriteBarChart(w io.Writer, points []stats.SeriesPoint, width int) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "no data in range")
		return err
	}
	if width <= 0 {
		width = 40
	}

	peak := 0
	for _, p := range points {
		if p.Calories > peak {
			peak = p.Calories
		}
	}

	for _, p := range points {
		n := 0
		if peak > 0 {
			n = p.Calories * width / peak
		}
		if _, err := fmt.Fprintf(w, "%s │%-*s %d\n", p.Date, width, strings.Repeat("█", n), p.Calories); err != nil {
			return err
		}
	}
	return nil
}
