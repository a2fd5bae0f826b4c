// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// # Session Tokens

/*
GenerateSecureToken produces a cryptographically random opaque token.

Parameters:
  - byteLength: int (entropy in bytes, before encoding)

Returns:
  - string: URL-safe base64 token
  - error: Entropy source failures
*/
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns a SHA-256 hex digest of a session token.
//
// # Security
//
// Only the digest is ever written to the session store, so a leaked store
// snapshot cannot be replayed as live tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// # Request Identity

// Principal identifies the authenticated owner of the current request.
//
// It is resolved once by the session middleware and carried in the request
// context; handlers never see the raw credential, only this view.
type Principal struct {
	// UserID is the identity that owns the presented session token.
	UserID string

	// SessionToken is the raw token the client presented. Kept so that
	// logout and account deletion can revoke the exact session in use.
	SessionToken string
}
