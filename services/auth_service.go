package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/souramoo/calorie-counter-vibe/models"
	"github.com/souramoo/calorie-counter-vibe/utils"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	resetTokenLength = 6
	resetTokenTTL    = 15 * time.Minute
	maxResetAttempts = 5
)

// Mailer delivers password reset codes.
type Mailer interface {
	SendResetEmail(ctx context.Context, to, code string) error
}

type AuthService struct {
	db     *gorm.DB
	tokens *utils.TokenManager
	mailer Mailer
	now    func() time.Time
	log    zerolog.Logger
}

// NewAuthService builds the auth flows. mailer may be nil, which disables
// password reset.
func NewAuthService(db *gorm.DB, tokens *utils.TokenManager, mailer Mailer, log zerolog.Logger) *AuthService {
	return &AuthService{db: db, tokens: tokens, mailer: mailer, now: time.Now, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if err := ensureUnique(ctx, s.db, 0, username, email); err != nil {
		return nil, "", err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:    username,
		Email:       email,
		Password:    hashed,
		CalorieGoal: models.DefaultCalorieGoal,
	}
	if err := s.insertUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	authEventsTotal.WithLabelValues("register").Inc()
	return user, token, nil
}

func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			authEventsTotal.WithLabelValues("login_failed").Inc()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		authEventsTotal.WithLabelValues("login_failed").Inc()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	authEventsTotal.WithLabelValues("login").Inc()
	return &user, token, nil
}

// ForgotPassword stores and mails a short-lived reset code. Unknown emails
// succeed silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if s.mailer == nil {
		return ErrFeatureDisabled
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	code, err := utils.GenerateRandomToken(resetTokenLength)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	user.ResetToken = code
	user.ResetTokenExp = s.now().Add(resetTokenTTL)
	user.ResetAttempts = 0
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	if err := s.mailer.SendResetEmail(ctx, user.Email, code); err != nil {
		s.log.Error().Err(err).Uint("user_id", user.ID).Msg("send reset email")
		return err
	}
	authEventsTotal.WithLabelValues("reset_requested").Inc()
	return nil
}

// insertUser creates the account. A unique-index violation means another
// registration won the race after ensureUnique ran, so the check is repeated
// to report which column collided.
func (s *AuthService) insertUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if uerr := ensureUnique(ctx, s.db, 0, user.Username, user.Email); uerr != nil {
			return uerr
		}
	}
	return fmt.Errorf("create user: %w", err)
}

// ResetPassword checks a reset code against the account it was issued for.
// After maxResetAttempts wrong codes the code is revoked.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("load user: %w", err)
	}
	if user.ResetToken == "" || s.now().After(user.ResetTokenExp) {
		return ErrInvalidResetToken
	}

	if subtle.ConstantTimeCompare([]byte(user.ResetToken), []byte(token)) != 1 {
		user.ResetAttempts++
		if user.ResetAttempts >= maxResetAttempts {
			user.ResetToken = ""
			user.ResetTokenExp = time.Time{}
			user.ResetAttempts = 0
			s.log.Warn().Uint("user_id", user.ID).Msg("reset code revoked after too many attempts")
		}
		if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
			return fmt.Errorf("save reset attempts: %w", err)
		}
		authEventsTotal.WithLabelValues("reset_failed").Inc()
		return ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	user.ResetAttempts = 0
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	authEventsTotal.WithLabelValues("reset_completed").Inc()
	return nil
}

// ensureUnique checks username and email against every account except
// selfID.
func ensureUnique(ctx context.Context, db *gorm.DB, selfID uint, username, email string) error {
	var count int64
	if email != "" {
		if err := db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", email, selfID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return ErrEmailTaken
		}
	}
	if username != "" {
		if err := db.WithContext(ctx).Model(&models.User{}).
			Where("username = ? AND id <> ?", username, selfID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}
	}
	return nil
}
