package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/souramoo/calorie-counter-vibe/models"
	"github.com/souramoo/calorie-counter-vibe/utils"

	"gorm.io/gorm"
)

// ImageUploader stores a base64 data URL and returns its public URL.
type ImageUploader interface {
	UploadBase64Image(ctx context.Context, dataURL, prefix string) (string, error)
}

// ProfileInput is a partial profile update; empty/nil fields are left alone.
type ProfileInput struct {
	Username       string
	Email          string
	Password       string
	CalorieGoal    *int
	ProfilePicture string
}

type UserService struct {
	db       *gorm.DB
	uploader ImageUploader
}

// NewUserService wires profile management. uploader may be nil, which
// disables profile pictures.
func NewUserService(db *gorm.DB, uploader ImageUploader) *UserService {
	return &UserService{db: db, uploader: uploader}
}

func (s *UserService) GetUserProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateUserProfile(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	var checkUsername, checkEmail string
	if username != "" && username != user.Username {
		checkUsername = username
	}
	if email != "" && email != user.Email {
		checkEmail = email
	}
	if err := ensureUnique(ctx, s.db, user.ID, checkUsername, checkEmail); err != nil {
		return nil, err
	}

	if input.ProfilePicture != "" {
		if s.uploader == nil {
			return nil, ErrFeatureDisabled
		}
		url, err := s.uploader.UploadBase64Image(ctx, input.ProfilePicture, fmt.Sprintf("user-%d", user.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfilePicture = url
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if input.CalorieGoal != nil {
		user.CalorieGoal = *input.CalorieGoal
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}
