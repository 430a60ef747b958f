package services

import (
	"testing"

	"quizdeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	user, err := auth.Register(&RegisterRequest{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	_, err := auth.Register(&RegisterRequest{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = auth.Register(&RegisterRequest{
		Name: "Other", Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = auth.Register(&RegisterRequest{
		Name: "Other", Username: "other", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "failed registrations must not create records")
}

func TestLoginChecksCredentials(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	registered, err := auth.Register(&RegisterRequest{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := auth.Login(&LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Wrong password and unknown username must be indistinguishable.
	_, wrongPass := auth.Login(&LoginRequest{Username: "alice", Password: "nope"})
	_, unknown := auth.Login(&LoginRequest{Username: "bob", Password: "secret123"})
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestUpdateProfileConflicts(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	alice := createUser(t, db, "alice", models.RoleUser)
	createUser(t, db, "bob", models.RoleUser)

	status, err := auth.UpdateProfile(alice, &UpdateProfileRequest{
		Name: "Alice", Username: "bob", Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, ProfileUsedUsername, status)

	status, err = auth.UpdateProfile(alice, &UpdateProfileRequest{
		Name: "Alice", Username: "alice", Email: "bob@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, ProfileUsedEmail, status)

	// A failed update must leave the row untouched.
	var stored models.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "alice@example.com", stored.Email)
}

func TestUpdateProfileOwnValuesAreNotConflicts(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	alice := createUser(t, db, "alice", models.RoleUser)

	status, err := auth.UpdateProfile(alice, &UpdateProfileRequest{
		Name: "Alice Smith", Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, ProfileUpdated, status)

	var stored models.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "Alice Smith", stored.Name)
}
