// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/platform/constants"
	"github.com/hoangnmai/orderly/internal/platform/sec"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis.
//
// # Key Layout
//
// Two keys per live session, both carrying the fixed session TTL:
//
//	sess:token:<sha256(token)> -> userID     (resolution path)
//	sess:user:<userID>         -> tokenHash  (replacement path)
//
// The owner key lets Issue find and delete the user's previous token, which
// enforces the at-most-one-live-session rule. Expiry is passive: Redis TTLs
// remove both keys, no sweeper required.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// issueMaxRetries bounds the optimistic-lock retry loop in Issue. Contention
// only occurs between logins for the same user, so retries resolve quickly.
const issueMaxRetries = 100

/*
Issue binds a fresh token to the userID with the fixed session TTL.

Description: The owner key is read and rewritten under WATCH, so the
lookup of the previous token and its replacement commit as one unit. Two
concurrent logins for the same user serialize: the loser's transaction is
invalidated and retried, and exactly one token survives.

Parameters:
  - context: context.Context
  - userID: string
  - token: string (raw; only the SHA-256 hash touches Redis)

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Issue(context context.Context, userID string, token string) error {
	tokenHash := sec.HashToken(token)
	ownerKey := constants.RedisPrefixSessionOwner + userID

	replace := func(tx *redis.Tx) error {
		// Look up the token this user currently holds, if any
		previousHash, err := tx.Get(context, ownerKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		// Drop the old binding and set both new keys. EXEC fails with
		// TxFailedErr if the owner key changed since the WATCH.
		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			if previousHash != "" {
				pipe.Del(context, constants.RedisPrefixSessionToken+previousHash)
			}
			pipe.Set(context, constants.RedisPrefixSessionToken+tokenHash, userID, SessionTokenTTL)
			pipe.Set(context, ownerKey, tokenHash, SessionTokenTTL)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < issueMaxRetries; attempt++ {
		err := repository.client.Watch(context, replace, ownerKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("redis_session_issue_failed: %w", err)
	}

	return fmt.Errorf("redis_session_issue_failed: %w", redis.TxFailedErr)
}

/*
Resolve returns the userID bound to the given raw token.

Description: Returns apperr.NotFound if the token is absent, replaced by a
newer login, or expired by TTL. The three cases are indistinguishable on
purpose.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Resolve(context context.Context, token string) (string, error) {
	key := constants.RedisPrefixSessionToken + sec.HashToken(token)

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_resolve_failed: %w", err)
	}

	return userID, nil
}

/*
Revoke invalidates the given raw token.

Description: Idempotent; revoking an unknown or expired token succeeds
silently. The owner key is removed only while it still points at this token,
so a concurrent re-login is never clobbered.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, token string) error {
	tokenHash := sec.HashToken(token)
	tokenKey := constants.RedisPrefixSessionToken + tokenHash

	// Find the owner so the reverse mapping can be cleaned up too
	userID, err := repository.client.Get(context, tokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis_session_revoke_lookup_failed: %w", err)
	}

	if err := repository.client.Del(context, tokenKey).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	ownerKey := constants.RedisPrefixSessionOwner + userID
	currentHash, err := repository.client.Get(context, ownerKey).Result()
	if err == nil && currentHash == tokenHash {
		if err := repository.client.Del(context, ownerKey).Err(); err != nil {
			return fmt.Errorf("redis_session_revoke_owner_failed: %w", err)
		}
	}

	return nil
}

/*
RevokeAllForUser invalidates whatever token the user currently holds.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) RevokeAllForUser(context context.Context, userID string) error {
	ownerKey := constants.RedisPrefixSessionOwner + userID

	tokenHash, err := repository.client.Get(context, ownerKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis_session_revoke_all_lookup_failed: %w", err)
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Del(context, constants.RedisPrefixSessionToken+tokenHash)
		pipe.Del(context, ownerKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	return nil
}
