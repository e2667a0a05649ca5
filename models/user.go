package models

import (
    "time"

    "gorm.io/gorm"
)

// DefaultCalorieGoal is assigned to new accounts.
const DefaultCalorieGoal = 2000

type User struct {
    gorm.Model
    Username       string `gorm:"uniqueIndex;size:64;not null"`
    Email          string `gorm:"uniqueIndex;not null"`
    Password       string `gorm:"not null"`
    CalorieGoal    int    `gorm:"not null;default:2000"`
    ProfilePicture string

    // password reset
    ResetToken    string    `gorm:"index"`
    ResetTokenExp time.Time
    ResetAttempts int       `gorm:"not null;default:0"`
}
