// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/users/auth"
)

// # In-Memory Fakes

// fakeUserRepository mimics the Postgres store, including its unique-email
// arbitration on Create and Update. Safe for concurrent use.
type fakeUserRepository struct {
	mu      sync.Mutex
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
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	copied := *user
	repo.byID[user.ID] = &copied
	repo.byEmail[user.Email] = &copied
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

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
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(repo.byEmail, user.Email)
	delete(repo.byID, id)
	return nil
}

// fakeSessionRepository mirrors the Redis token/owner key pair. Safe for
// concurrent use.
type fakeSessionRepository struct {
	mu          sync.Mutex
	tokenToUser map[string]string
	userToToken map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{
		tokenToUser: make(map[string]string),
		userToToken: make(map[string]string),
	}
}

func (repo *fakeSessionRepository) Issue(_ context.Context, userID string, token string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if previous, ok := repo.userToToken[userID]; ok {
		delete(repo.tokenToUser, previous)
	}
	repo.tokenToUser[token] = userID
	repo.userToToken[userID] = token
	return nil
}

func (repo *fakeSessionRepository) Resolve(_ context.Context, token string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	userID, ok := repo.tokenToUser[token]
	if !ok {
		return "", apperr.NotFound("Session")
	}
	return userID, nil
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, token string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if userID, ok := repo.tokenToUser[token]; ok {
		delete(repo.tokenToUser, token)
		if repo.userToToken[userID] == token {
			delete(repo.userToToken, userID)
		}
	}
	return nil
}

func (repo *fakeSessionRepository) RevokeAllForUser(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if token, ok := repo.userToToken[userID]; ok {
		delete(repo.tokenToUser, token)
		delete(repo.userToToken, userID)
	}
	return nil
}

// failingUserRepository simulates a backing-store outage on lookups.
type failingUserRepository struct {
	*fakeUserRepository
	findByEmailErr error
}

func (repo *failingUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if repo.findByEmailErr != nil {
		return nil, repo.findByEmailErr
	}
	return repo.fakeUserRepository.FindByEmail(ctx, email)
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	return auth.NewService(users, sessions, nil), users, sessions
}

// # Tests

/*
TestService_Signup verifies enrollment: normalization, hashing, and the
immediately usable session.
*/
func TestService_Signup(t *testing.T) {
	service, users, _ := newTestService()

	session, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "minh",
		Email:    "  Minh@Example.COM ",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, session.User)

	// Email is stored normalized
	assert.Equal(t, "minh@example.com", session.User.Email)

	// The stored credential is never the plain text
	stored := users.byEmail["minh@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	// The session works right away
	userID, err := service.ResolveSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)
}

/*
TestService_Signup_DuplicateEmail checks that case-variant duplicates lose at
the store and leave no session behind.
*/
func TestService_Signup_DuplicateEmail(t *testing.T) {
	service, _, sessions := newTestService()

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "first",
		Email:    "taken@example.com",
		Password: "password-one",
	})
	require.NoError(t, err)

	before := len(sessions.tokenToUser)

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Username: "second",
		Email:    "TAKEN@example.com",
		Password: "password-two",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// Failed signup issued nothing
	assert.Len(t, sessions.tokenToUser, before)
}

/*
TestService_Login covers credential verification and the single-session rule.
*/
func TestService_Login(t *testing.T) {
	service, _, _ := newTestService()

	first, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "linh",
		Email:    "linh@example.com",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)

	second, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "LINH@example.com",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// The replaced token stops resolving immediately
	_, err = service.ResolveSession(context.Background(), first.Token)
	assert.True(t, apperr.IsNotFound(err))

	userID, err := service.ResolveSession(context.Background(), second.Token)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, userID)
}

/*
TestService_Login_Failures asserts unknown email and wrong password are
indistinguishable to the caller.
*/
func TestService_Login_Failures(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "khoa",
		Email:    "khoa@example.com",
		Password: "right-password",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "right-password",
	})
	require.Error(t, unknownErr)

	_, wrongErr := service.Login(context.Background(), auth.LoginInput{
		Email:    "khoa@example.com",
		Password: "wrong-password",
	})
	require.Error(t, wrongErr)

	assert.Equal(t, apperr.As(unknownErr).Code, apperr.As(wrongErr).Code)
	assert.Equal(t, apperr.As(unknownErr).Message, apperr.As(wrongErr).Message)
}

/*
TestService_Login_StoreFailure asserts that a store outage during lookup is
reported as a server error, not as bad credentials.
*/
func TestService_Login_StoreFailure(t *testing.T) {
	users := &failingUserRepository{
		fakeUserRepository: newFakeUserRepository(),
		findByEmailErr:     apperr.Internal(errors.New("connection refused")),
	}
	service := auth.NewService(users, newFakeSessionRepository(), nil)

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "anyone@example.com",
		Password: "whatever",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "INTERNAL_ERROR", appError.Code)
	assert.Equal(t, 500, appError.HTTPStatus)
	assert.NotContains(t, appError.Message, "Invalid email or password")
}

/*
TestService_Signup_ConcurrentDuplicateEmail races two enrollments for the
same normalized address: the store arbitrates, exactly one wins, and the
loser leaves neither a row nor a session.
*/
func TestService_Signup_ConcurrentDuplicateEmail(t *testing.T) {
	service, users, sessions := newTestService()

	inputs := []auth.SignupInput{
		{Username: "first", Email: "race@example.com", Password: "password-one"},
		{Username: "second", Email: " RACE@Example.COM ", Password: "password-two"},
	}

	var wg sync.WaitGroup
	results := make([]error, len(inputs))
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.Signup(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, apperr.IsConflict(err))
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	// Exactly one row and one session exist
	assert.Len(t, users.byEmail, 1)
	assert.NotNil(t, users.byEmail["race@example.com"])
	assert.Len(t, sessions.tokenToUser, 1)
}

/*
TestService_Logout checks revocation and its idempotency.
*/
func TestService_Logout(t *testing.T) {
	service, _, _ := newTestService()

	session, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "trang",
		Email:    "trang@example.com",
		Password: "another-secret",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.Token))

	_, err = service.ResolveSession(context.Background(), session.Token)
	assert.True(t, apperr.IsNotFound(err))

	// Second logout with the same dead token still succeeds
	require.NoError(t, service.Logout(context.Background(), session.Token))
	require.NoError(t, service.Logout(context.Background(), ""))
}

/*
TestNormalizeEmail pins the canonical form used for storage and lookup.
*/
func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", auth.NormalizeEmail(" A@B.Com "))
	assert.Equal(t, "a@b.com", auth.NormalizeEmail("a@b.com"))
	assert.Equal(t, "", auth.NormalizeEmail("   "))
}
