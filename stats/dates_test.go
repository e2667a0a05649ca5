package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatesBetweenSingleDay(t *testing.T) {
	d := day("2024-01-01")
	assert.Equal(t, []string{"2024-01-01"}, DatesBetween(d, d))
}

func TestDatesBetweenReversedIsEmpty(t *testing.T) {
	got := DatesBetween(day("2024-01-05"), day("2024-01-01"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDatesBetweenLength(t *testing.T) {
	start, end := day("2023-12-25"), day("2024-03-02")

	got := DatesBetween(start, end)

	days := int(end.Sub(start).Hours() / 24)
	require.Len(t, got, days+1)
	assert.Equal(t, "2023-12-25", got[0])
	assert.Equal(t, "2024-02-29", got[len(got)-3])
	assert.Equal(t, "2024-03-02", got[len(got)-1])
}

func TestDatesBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, DatesBetween(start, end))
}

func TestDenseSeriesSumsSameDay(t *testing.T) {
	entries := []Entry{
		{Date: day("2024-01-01"), Calories: 500},
		{Date: day("2024-01-01"), Calories: 300},
		{Date: day("2024-01-02"), Calories: 800},
	}

	got := DenseSeries(entries, day("2024-01-01"), day("2024-01-02"))

	assert.Equal(t, []SeriesPoint{
		{Date: "2024-01-01", Calories: 800, DisplayDate: "January 1, 2024"},
		{Date: "2024-01-02", Calories: 800, DisplayDate: "January 2, 2024"},
	}, got)
}

func TestDenseSeriesZeroFillsGaps(t *testing.T) {
	entries := []Entry{
		{Date: day("2024-01-03"), Calories: 1200},
		{Date: day("2023-12-31"), Calories: 999},
	}

	got := DenseSeries(entries, day("2024-01-01"), day("2024-01-04"))

	require.Len(t, got, 4)
	assert.Equal(t, []int{0, 0, 1200, 0}, []int{got[0].Calories, got[1].Calories, got[2].Calories, got[3].Calories})
}

func TestDenseSeriesReversedRange(t *testing.T) {
	got := DenseSeries([]Entry{{Date: day("2024-01-01"), Calories: 1}}, day("2024-01-02"), day("2024-01-01"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 6, 1, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), DayStart(at))
	assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 999999999, time.UTC), DayEnd(at))
}
