package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/souramoo/calorie-counter-vibe/config"
	"github.com/souramoo/calorie-counter-vibe/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "x", CalorieGoal: models.DefaultCalorieGoal}
	require.NoError(t, db.Create(u).Error)
	return u
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type recordedEvent struct {
	UserID uint
	Event  Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakePublisher) Publish(userID uint, ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{UserID: userID, Event: ev})
}

func (f *fakePublisher) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Event.Kind
	}
	return out
}

type fakeMailer struct {
	to, code string
	err      error
}

func (m *fakeMailer) SendResetEmail(_ context.Context, to, code string) error {
	m.to, m.code = to, code
	return m.err
}

type fakeUploader struct {
	dataURL, prefix string
}

func (u *fakeUploader) UploadBase64Image(_ context.Context, dataURL, prefix string) (string, error) {
	u.dataURL, u.prefix = dataURL, prefix
	return "https://cdn.example.com/profile-pictures/" + prefix + ".png", nil
}

func quietLogger() zerolog.Logger { return zerolog.Nop() }
