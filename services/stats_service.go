package services

import (
	"context"
	"time"

	"github.com/souramoo/calorie-counter-vibe/models"
	"github.com/souramoo/calorie-counter-vibe/stats"
)

// EntryStore is the read side the stats endpoints need: the complete history
// and a date-bounded subset, as two separate queries.
type EntryStore interface {
	AllForUser(ctx context.Context, userID uint) ([]models.CalorieEntry, error)
	InRange(ctx context.Context, userID uint, from, to *time.Time) ([]models.CalorieEntry, error)
}

type StatsService struct {
	store EntryStore
	clock stats.Clock
}

func NewStatsService(store EntryStore, clock stats.Clock) *StatsService {
	if clock == nil {
		clock = stats.SystemClock{}
	}
	return &StatsService{store: store, clock: clock}
}

// Now exposes the injected clock to handlers that resolve relative ranges.
func (s *StatsService) Now() time.Time { return s.clock.Now() }

// PeriodStats computes the summary for the window ending now.
func (s *StatsService) PeriodStats(ctx context.Context, userID uint, period stats.Period) (stats.PeriodStats, error) {
	w := stats.WindowFor(period, s.clock.Now())

	all, err := s.store.AllForUser(ctx, userID)
	if err != nil {
		return stats.PeriodStats{}, err
	}
	inWindow, err := s.store.InRange(ctx, userID, &w.Start, &w.End)
	if err != nil {
		return stats.PeriodStats{}, err
	}

	statsRequestsTotal.WithLabelValues(string(period)).Inc()
	return stats.Compute(toStatsEntries(all), toStatsEntries(inWindow)), nil
}

// Series builds the zero-filled per-day series between two calendar days.
func (s *StatsService) Series(ctx context.Context, userID uint, start, end time.Time) ([]stats.SeriesPoint, error) {
	start, end = stats.DayStart(start.UTC()), stats.DayEnd(end.UTC())
	if start.After(end) {
		return stats.DenseSeries(nil, start, end), nil
	}

	entries, err := s.store.InRange(ctx, userID, &start, &end)
	if err != nil {
		return nil, err
	}
	return stats.DenseSeries(toStatsEntries(entries), start, end), nil
}
