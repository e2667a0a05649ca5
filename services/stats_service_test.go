package services

import (
	"context"
	"testing"
	"time"

	"github.com/souramoo/calorie-counter-vibe/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodStatsWeek(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	entries := NewEntryService(db, nil, quietLogger())
	ctx := context.Background()

	add := func(uid uint, d string, cal int) {
		_, err := entries.Create(ctx, uid, EntryInput{Date: day(d), Calories: cal})
		require.NoError(t, err)
	}
	add(alice.ID, "2024-01-01", 3000) // outside the week
	add(alice.ID, "2024-03-10", 1500)
	add(alice.ID, "2024-03-12", 2500)
	add(alice.ID, "2024-03-14", 1500)
	add(bob.ID, "2024-03-13", 9999)

	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	svc := NewStatsService(entries, stats.FixedClock(now))

	got, err := svc.PeriodStats(ctx, alice.ID, stats.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalEntries)
	assert.InDelta(t, 2125.0, got.DailyAverage, 1e-9)
	assert.Equal(t, 5500, got.PeriodTotal)
	assert.InDelta(t, 5500.0/3, got.PeriodAverage, 1e-9)
	require.NotNil(t, got.HighestDay)
	assert.Equal(t, 2500, got.HighestDay.Calories)
	require.NotNil(t, got.LowestDay)
	assert.Equal(t, 1500, got.LowestDay.Calories)
	assert.True(t, got.LowestDay.Date.Equal(day("2024-03-10")), "ties go to the earliest entry")
}

func TestPeriodStatsEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	entries := NewEntryService(db, nil, quietLogger())
	ctx := context.Background()

	_, err := entries.Create(ctx, alice.ID, EntryInput{Date: day("2023-01-01"), Calories: 2000})
	require.NoError(t, err)

	svc := NewStatsService(entries, stats.FixedClock(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)))
	got, err := svc.PeriodStats(ctx, alice.ID, stats.PeriodDay)
	require.NoError(t, err)
	assert.Equal(t, stats.PeriodStats{}, got)
}

func TestPeriodStatsDayIncludesToday(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	entries := NewEntryService(db, nil, quietLogger())
	ctx := context.Background()

	_, err := entries.Create(ctx, alice.ID, EntryInput{Date: day("2024-03-15"), Calories: 1200})
	require.NoError(t, err)
	_, err = entries.Create(ctx, alice.ID, EntryInput{Date: day("2024-03-14"), Calories: 800})
	require.NoError(t, err)

	svc := NewStatsService(entries, stats.FixedClock(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)))
	got, err := svc.PeriodStats(ctx, alice.ID, stats.PeriodDay)
	require.NoError(t, err)
	assert.Equal(t, 1200, got.PeriodTotal)
	assert.Equal(t, 2, got.TotalEntries)
}

func TestSeriesZeroFills(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	entries := NewEntryService(db, nil, quietLogger())
	ctx := context.Background()

	for _, e := range []struct {
		d   string
		cal int
	}{{"2024-01-01", 500}, {"2024-01-01", 300}, {"2024-01-03", 800}} {
		_, err := entries.Create(ctx, alice.ID, EntryInput{Date: day(e.d), Calories: e.cal})
		require.NoError(t, err)
	}

	svc := NewStatsService(entries, nil)
	points, err := svc.Series(ctx, alice.ID, day("2024-01-01"), day("2024-01-04"))
	require.NoError(t, err)
	require.Len(t, points, 4)

	cals := make([]int, len(points))
	for i, p := range points {
		cals[i] = p.Calories
	}
	assert.Equal(t, []int{800, 0, 800, 0}, cals)
	assert.Equal(t, "2024-01-02", points[1].Date)
	assert.Equal(t, "January 2, 2024", points[1].DisplayDate)
}

func TestSeriesReversedRangeIsEmpty(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	svc := NewStatsService(NewEntryService(db, nil, quietLogger()), nil)

	points, err := svc.Series(context.Background(), alice.ID, day("2024-01-05"), day("2024-01-01"))
	require.NoError(t, err)
	assert.Empty(t, points)
}
