// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/platform/sec"
	"github.com/hoangnmai/orderly/internal/users/account"
	"github.com/hoangnmai/orderly/internal/users/auth"
	"github.com/hoangnmai/orderly/pkg/pointer"
	"github.com/hoangnmai/orderly/pkg/uuid"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	copied := *user
	repo.byID[user.ID] = &copied
	repo.byEmail[user.Email] = &copied
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	existing, ok := repo.byID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if other, exists := repo.byEmail[user.Email]; exists && other.ID != user.ID {
		return apperr.Conflict("Email is already registered")
	}
	delete(repo.byEmail, existing.Email)
	copied := *user
	repo.byID[user.ID] = &copied
	repo.byEmail[user.Email] = &copied
	return nil
}

func (repo *fakeUserRepository) Delete(_ context.Context, id string) error {
	user, ok := repo.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(repo.byEmail, user.Email)
	delete(repo.byID, id)
	return nil
}

type fakeSessionRepository struct {
	revokedUsers []string
}

func (repo *fakeSessionRepository) Issue(_ context.Context, _ string, _ string) error { return nil }

func (repo *fakeSessionRepository) Resolve(_ context.Context, _ string) (string, error) {
	return "", apperr.NotFound("Session")
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, _ string) error { return nil }

func (repo *fakeSessionRepository) RevokeAllForUser(_ context.Context, userID string) error {
	repo.revokedUsers = append(repo.revokedUsers, userID)
	return nil
}

func seedUser(t *testing.T, users *fakeUserRepository, email, password string) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{
		ID:           uuid.New(),
		Username:     "seeded",
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func newTestService() (*account.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := &fakeSessionRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(users, sessions, logger), users, sessions
}

// # Tests

/*
TestService_GetProfile covers the plain read path and the vanished-account case.
*/
func TestService_GetProfile(t *testing.T) {
	service, users, _ := newTestService()
	seeded := seedUser(t, users, "read@example.com", "some-password")

	user, err := service.GetProfile(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "read@example.com", user.Email)

	_, err = service.GetProfile(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_UpdateProfile exercises partial updates, normalization, and the
empty change set rejection.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, users, _ := newTestService()
	seeded := seedUser(t, users, "old@example.com", "some-password")

	// Empty change set is invalid input
	_, err := service.UpdateProfile(context.Background(), seeded.ID, account.UpdateProfileInput{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Username-only update leaves the email alone
	updated, err := service.UpdateProfile(context.Background(), seeded.ID, account.UpdateProfileInput{
		Username: pointer.To("renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "old@example.com", updated.Email)

	// Email update is normalized before storage
	updated, err = service.UpdateProfile(context.Background(), seeded.ID, account.UpdateProfileInput{
		Email: pointer.To(" New@Example.COM "),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

/*
TestService_UpdateProfile_EmailConflict checks that stealing another account's
email loses with a Conflict.
*/
func TestService_UpdateProfile_EmailConflict(t *testing.T) {
	service, users, _ := newTestService()
	seedUser(t, users, "holder@example.com", "some-password")
	mover := seedUser(t, users, "mover@example.com", "some-password")

	_, err := service.UpdateProfile(context.Background(), mover.ID, account.UpdateProfileInput{
		Email: pointer.To("Holder@example.com"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// The loser's row is unchanged
	unchanged, err := service.GetProfile(context.Background(), mover.ID)
	require.NoError(t, err)
	assert.Equal(t, "mover@example.com", unchanged.Email)
}

/*
TestService_DeleteAccount verifies the password gate and full teardown.
*/
func TestService_DeleteAccount(t *testing.T) {
	service, users, sessions := newTestService()
	seeded := seedUser(t, users, "victim@example.com", "the-real-password")

	// Wrong password: nothing mutates
	err := service.DeleteAccount(context.Background(), seeded.ID, "not-the-password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	still, err := service.GetProfile(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, still.ID)
	assert.Empty(t, sessions.revokedUsers)

	// Correct password: row gone, session revoked
	require.NoError(t, service.DeleteAccount(context.Background(), seeded.ID, "the-real-password"))

	_, err = service.GetProfile(context.Background(), seeded.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, []string{seeded.ID}, sessions.revokedUsers)
}
