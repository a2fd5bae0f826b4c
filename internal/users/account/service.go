// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

/*
Package account implements self-service management of the authenticated
user's own profile.

It builds on the identity entities and repositories defined in [auth],
adding profile reads, partial updates, and the guarded account deletion flow.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/platform/sec"
	"github.com/hoangnmai/orderly/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for the authenticated user's account.
type Service struct {
	userRepository    auth.UserRepository
	sessionRepository auth.SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	userRepo auth.UserRepository,
	sessionRepo auth.SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Description: The credential hash never leaves the server; the entity strips
it from JSON.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	Username *string
	Email    *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overlays provided fields, and
synchronizes the change to persistent storage. An empty change set is
rejected before any read.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: ValidationError, Conflict (email taken), NotFound, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {

	// Reject no-op updates before touching storage
	if input.Username == nil && input.Email == nil {
		return nil, apperr.ValidationError("No changes provided")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Username != nil {
		user.Username = *input.Username
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = auth.NormalizeEmail(*input.Email)
	}

	// Persist changes. An email collision loses to the unique index here.
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Account Deletion

/*
DeleteAccount permanently removes the user and everything they own.

Description: The caller must re-prove the password before anything mutates.
On success the identity row, its orders (FK cascade), and the live session
are all gone.

Parameters:
  - context: context.Context
  - userID: string
  - password: string

Returns:
  - error: Unauthorized (password mismatch, nothing touched), NotFound, or
    storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string, password string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Guard: the password gate sits before every mutation
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return apperr.Unauthorized("Invalid password")
	}

	if err := service.userRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	// Session teardown after the row is gone; a stale token resolving to a
	// deleted user would fail the subsequent lookup anyway.
	if err := service.sessionRepository.RevokeAllForUser(context, userID); err != nil {
		return fmt.Errorf("account_service_revoke_failed: %w", err)
	}

	service.logger.Info("user_account_deleted", slog.String("user_id", userID))

	return nil
}
