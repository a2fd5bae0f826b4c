// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

/*
Package auth implements the core identity and access management system.

It handles everything from user registration and secure password hashing to
session lifecycle management via opaque tokens stored in Redis.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Logout).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Argon2id password hashing, SHA-256 hashed session tokens.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/platform/sec"
	"github.com/hoangnmai/orderly/pkg/uuid"
)

// # Contracts & Types

// Recorder receives authentication outcome events for the metrics pipeline.
type Recorder interface {
	RecordSignup()
	RecordLogin(outcome string)
}

// nopRecorder is used when no metrics collector is wired in (tests).
type nopRecorder struct{}

func (nopRecorder) RecordSignup() {}

func (nopRecorder) RecordLogin(outcome string) {}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	recorder          Recorder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, recorder Recorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		recorder:          recorder,
	}
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
// Addresses differing only in case or surrounding whitespace are the same
// identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// SignupInput holds the data required to enroll a new customer.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthSession represents a successfully established user session.
type AuthSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Signup validates, hashes, and persists a brand new user account, then
establishes its first session.

Description: The email unique index arbitrates concurrent signups; this
method never pre-checks for duplicates. A failed insert leaves no session
behind.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *AuthSession: Live session for the new account
  - error: Conflict (if email is taken) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*AuthSession, error) {

	// Prevent storing plain-text passwords. Fixed argon2id cost parameters
	// balance security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hashedPassword,
	}

	// Persist the user. A duplicate email surfaces here as Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	service.recorder.RecordSignup()

	return session, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a fresh session token.

Description: Performs constant-time password comparison and replaces any
previously issued token for the account. Unknown email and wrong password
produce the same generic error to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(input.Email))

	// Only a missing account maps to the generic message; a store failure is
	// not a credential failure and must surface as one.
	if err != nil {
		if apperr.IsNotFound(err) {
			service.recorder.RecordLogin("failure")
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Constant-time comparison inside CheckPasswordHash prevents timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recorder.RecordLogin("failure")
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	service.recorder.RecordLogin("success")

	return session, nil
}

/*
Logout revokes the given session token.

Description: Idempotent; logging out an already-dead token succeeds.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(context context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := service.sessionRepository.Revoke(context, token); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

/*
CurrentUser loads the account bound to an authenticated session.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated profile
  - error: NotFound when the account vanished mid-session
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
ResolveSession maps a raw session token back to its owning userID.

Description: Satisfies the middleware session-resolver contract.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: UserID
  - error: NotFound for dead tokens
*/
func (service *Service) ResolveSession(context context.Context, token string) (string, error) {
	return service.sessionRepository.Resolve(context, token)
}

// issueSession generates a token and binds it, replacing any prior session.
func (service *Service) issueSession(context context.Context, user *User) (*AuthSession, error) {
	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.sessionRepository.Issue(context, user.ID, token); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &AuthSession{
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTokenTTL),
		User:      user,
	}, nil
}
