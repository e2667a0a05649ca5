package services

import (
	"context"
	"testing"

	"github.com/souramoo/calorie-counter-vibe/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserProfile(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	uploader := &fakeUploader{}
	svc := NewUserService(db, uploader)
	ctx := context.Background()

	goal := 1800
	updated, err := svc.UpdateUserProfile(ctx, alice.ID, ProfileInput{
		Username:       "alice_w",
		CalorieGoal:    &goal,
		Password:       "newpass1",
		ProfilePicture: "data:image/png;base64,iVBORw0KGgo=",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_w", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, 1800, updated.CalorieGoal)
	assert.True(t, utils.CheckPasswordHash("newpass1", updated.Password))
	assert.Equal(t, "user-1", uploader.prefix)
	assert.Contains(t, updated.ProfilePicture, "https://cdn.example.com/")

	reloaded, err := svc.GetUserProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_w", reloaded.Username)
}

func TestUpdateUserProfileCollisions(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	svc := NewUserService(db, nil)
	ctx := context.Background()

	_, err := svc.UpdateUserProfile(ctx, alice.ID, ProfileInput{Email: "BOB@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.UpdateUserProfile(ctx, alice.ID, ProfileInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// own values are not collisions
	_, err = svc.UpdateUserProfile(ctx, alice.ID, ProfileInput{Username: "alice", Email: "alice@example.com"})
	assert.NoError(t, err)
}

func TestUpdateUserProfilePictureDisabled(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	svc := NewUserService(db, nil)

	_, err := svc.UpdateUserProfile(context.Background(), alice.ID, ProfileInput{ProfilePicture: "data:image/png;base64,AA=="})
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}

func TestGetUserProfileMissing(t *testing.T) {
	svc := NewUserService(newTestDB(t), nil)
	_, err := svc.GetUserProfile(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
