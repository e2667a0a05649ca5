package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/souramoo/calorie-counter-vibe/models"
	"github.com/souramoo/calorie-counter-vibe/stats"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 30
	MaxPageLimit     = 100
)

// EntryView is the JSON shape of a calorie entry.
type EntryView struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	Calories  int       `json:"calories"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewEntryView(e *models.CalorieEntry) EntryView {
	return EntryView{
		ID:        e.ID,
		Date:      e.Date.UTC(),
		Calories:  e.Calories,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

type EntryInput struct {
	Date     time.Time
	Calories int
	Notes    string
}

// EntryPatch holds the fields of a partial update; nil means unchanged.
type EntryPatch struct {
	Date     *time.Time
	Calories *int
	Notes    *string
}

type ListQuery struct {
	From  *time.Time
	To    *time.Time // inclusive
	Page  int
	Limit int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type EntryPage struct {
	Entries    []models.CalorieEntry
	Pagination Pagination
}

type EntryService struct {
	db     *gorm.DB
	events EventPublisher
	log    zerolog.Logger
}

// NewEntryService wires the entry store. events may be nil.
func NewEntryService(db *gorm.DB, events EventPublisher, log zerolog.Logger) *EntryService {
	return &EntryService{db: db, events: events, log: log}
}

func (s *EntryService) Create(ctx context.Context, userID uint, in EntryInput) (*models.CalorieEntry, error) {
	if in.Calories < 0 {
		return nil, errors.New("calories cannot be negative")
	}
	entry := &models.CalorieEntry{
		UserID:   userID,
		Date:     in.Date.UTC(),
		Calories: in.Calories,
		Notes:    in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	entryMutationsTotal.WithLabelValues("create").Inc()
	s.publish(userID, EventEntryCreated, entry)
	return entry, nil
}

func (s *EntryService) List(ctx context.Context, userID uint, q ListQuery) (*EntryPage, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	base := s.rangeQuery(ctx, userID, q.From, q.To)

	var total int64
	if err := base.Session(&gorm.Session{}).Model(&models.CalorieEntry{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	var entries []models.CalorieEntry
	if err := base.Session(&gorm.Session{}).
		Order("date DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return &EntryPage{
		Entries: entries,
		Pagination: Pagination{
			Total: total,
			Page:  q.Page,
			Limit: q.Limit,
			Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	}, nil
}

func (s *EntryService) Get(ctx context.Context, userID, id uint) (*models.CalorieEntry, error) {
	return s.authorize(ctx, userID, id)
}

func (s *EntryService) Update(ctx context.Context, userID, id uint, patch EntryPatch) (*models.CalorieEntry, error) {
	entry, err := s.authorize(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		entry.Date = patch.Date.UTC()
	}
	if patch.Calories != nil {
		if *patch.Calories < 0 {
			return nil, errors.New("calories cannot be negative")
		}
		entry.Calories = *patch.Calories
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
	}

	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	entryMutationsTotal.WithLabelValues("update").Inc()
	s.publish(userID, EventEntryUpdated, entry)
	return entry, nil
}

func (s *EntryService) Delete(ctx context.Context, userID, id uint) error {
	entry, err := s.authorize(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(entry).Error; err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	entryMutationsTotal.WithLabelValues("delete").Inc()
	s.publish(userID, EventEntryDeleted, entry)
	return nil
}

// AllForUser returns the full history, oldest first.
func (s *EntryService) AllForUser(ctx context.Context, userID uint) ([]models.CalorieEntry, error) {
	return s.InRange(ctx, userID, nil, nil)
}

// InRange returns entries with from <= date <= to, oldest first. Either
// bound may be nil.
func (s *EntryService) InRange(ctx context.Context, userID uint, from, to *time.Time) ([]models.CalorieEntry, error) {
	var entries []models.CalorieEntry
	err := s.rangeQuery(ctx, userID, from, to).
		Order("date ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return entries, nil
}

// authorize loads an entry and applies the ownership predicate.
func (s *EntryService) authorize(ctx context.Context, userID, id uint) (*models.CalorieEntry, error) {
	var entry models.CalorieEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("load entry: %w", err)
	}
	if !entry.OwnedBy(userID) {
		s.log.Warn().Uint("user_id", userID).Uint("entry_id", id).Msg("entry ownership check failed")
		return nil, ErrNotEntryOwner
	}
	return &entry, nil
}

func (s *EntryService) rangeQuery(ctx context.Context, userID uint, from, to *time.Time) *gorm.DB {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("date <= ?", to.UTC())
	}
	return q
}

func (s *EntryService) publish(userID uint, kind string, e *models.CalorieEntry) {
	if s.events == nil {
		return
	}
	s.events.Publish(userID, Event{Kind: kind, Entry: NewEntryView(e), At: time.Now().UTC()})
}

// toStatsEntries strips stored entries down to what the aggregations use.
func toStatsEntries(entries []models.CalorieEntry) []stats.Entry {
	out := make([]stats.Entry, len(entries))
	for i, e := range entries {
		out[i] = stats.Entry{Date: e.Date.UTC(), Calories: e.Calories}
	}
	return out
}
