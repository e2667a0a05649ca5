package services

import "errors"

var (
	ErrEntryNotFound      = errors.New("calorie entry not found")
	ErrNotEntryOwner      = errors.New("not authorized to access this entry")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrFeatureDisabled    = errors.New("feature not configured")
)
