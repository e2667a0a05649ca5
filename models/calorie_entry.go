package models

import (
    "time"

    "gorm.io/gorm"
)

// CalorieEntry is one day's logged calories for a user.
type CalorieEntry struct {
    gorm.Model
    UserID   uint      `gorm:"index:idx_entries_user_date,priority:1;not null"`
    Date     time.Time `gorm:"index:idx_entries_user_date,priority:2;index;not null"` // midnight UTC
    Calories int       `gorm:"not null;check:calories >= 0"`
    Notes    string    `gorm:"type:text"`
}

// OwnedBy is the authorization predicate for every single-entry read or mutation.
func (e *CalorieEntry) OwnedBy(userID uint) bool {
    return e != nil && e.UserID == userID
}
