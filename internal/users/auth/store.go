// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given normalized email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		The email unique index is the arbiter of duplicates: a violation
		surfaces as a Conflict error from this call, never from a pre-check.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict (email collision) or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account row. Dependent order rows are removed by
		the foreign key cascade in the same transaction.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}

// # Session Data Access

// SessionRepository defines the contract for the volatile session token store.
type SessionRepository interface {

	/*
		Issue binds a fresh token to the userID, replacing any previously
		issued token for that user in the same operation.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string (raw token; only its hash is persisted)

		Returns:
		  - error: Persistence failures
	*/
	Issue(context context.Context, userID string, token string) error

	/*
		Resolve returns the userID bound to the token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: apperr.NotFound when the token is absent, replaced, or expired
	*/
	Resolve(context context.Context, token string) (string, error)

	/*
		Revoke invalidates the token. Revoking an unknown token is a no-op.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, token string) error

	/*
		RevokeAllForUser invalidates whatever token the user currently holds.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeAllForUser(context context.Context, userID string) error
}
