package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowFor(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
	}{
		{PeriodDay, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2024, time.March, 8, 18, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2024, time.February, 15, 18, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2023, time.March, 15, 18, 0, 0, 0, time.UTC)},
		{Period("fortnight"), time.Date(2024, time.March, 8, 18, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w := WindowFor(tt.period, now)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, now, w.End)
		})
	}
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("")
	assert.True(t, ok)
	assert.Equal(t, PeriodWeek, p)

	p, ok = ParsePeriod(" Month ")
	assert.True(t, ok)
	assert.Equal(t, PeriodMonth, p)

	_, ok = ParsePeriod("decade")
	assert.False(t, ok)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, at, FixedClock(at).Now())
	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}

func TestPresetRange(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	start, end := PresetRange(RangeWeek, now)
	assert.Equal(t, "2024-03-09", start.Format(DateLayout))
	assert.Equal(t, "2024-03-15", end.Format(DateLayout))
	assert.Len(t, DatesBetween(start, end), 7)

	start, end = PresetRange(RangeMonth, now)
	assert.Equal(t, "2024-03-01", start.Format(DateLayout))
	assert.Equal(t, "2024-03-15", end.Format(DateLayout))

	start, end = PresetRange(RangeLastMonth, now)
	assert.Equal(t, "2024-02-01", start.Format(DateLayout))
	assert.Equal(t, "2024-02-29", end.Format(DateLayout))

	start, _ = PresetRange("bogus", now)
	assert.Equal(t, "2024-03-09", start.Format(DateLayout))
}
