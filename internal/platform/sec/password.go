// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

// Package sec provides cryptographic primitives for credential and token handling.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, session token
// generation) from the domain logic. It acts as an Infrastructure service and is
// the only place in the codebase allowed to touch crypto primitives directly.
package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Fixed argon2id derivation parameters. Raising these invalidates nothing:
// each stored hash embeds the parameters it was derived with, so old
// credentials keep verifying after a tuning change.
const (
	argonVersion     = 19 // argon2.Version (0x13)
	argonMemoryKiB   = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonSaltLength  = 16
	argonKeyLength   = 32
)

/*
HashPassword derives a storable credential hash from a plain-text password.

Description: Generates a fresh random salt and derives a key with argon2id.
Two calls with the same password always produce different encoded strings.

Parameters:
  - plainTextPassword: string

Returns:
  - string: Encoded hash "$argon2id$v=19$m=..,t=..,p=..$<salt_b64>$<key_b64>"
  - error: Entropy source failures
*/
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(plainTextPassword),
		salt,
		argonIterations,
		argonMemoryKiB,
		argonParallelism,
		argonKeyLength,
	)

	b64 := base64.RawStdEncoding
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argonVersion,
		argonMemoryKiB,
		argonIterations,
		argonParallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	)

	return encoded, nil
}

/*
CheckPasswordHash compares a plain-text password with its encoded hash.

Description: Recomputes the derived key from the embedded salt and parameters
and compares it in constant time. A malformed or unsupported encoded hash
verifies as false — it never panics and never returns an error to the caller,
so a corrupted credential row behaves exactly like a wrong password.

Parameters:
  - plainTextPassword: string
  - encodedHash: string

Returns:
  - bool: true only on an exact credential match
*/
func CheckPasswordHash(plainTextPassword, encodedHash string) bool {
	memory, iterations, parallelism, salt, expected, ok := decodeHash(encodedHash)
	if !ok {
		return false
	}

	key := argon2.IDKey(
		[]byte(plainTextPassword),
		salt,
		iterations,
		memory,
		parallelism,
		uint32(len(expected)),
	)

	return subtle.ConstantTimeCompare(key, expected) == 1
}

// decodeHash parses the encoded form and returns the embedded parameters,
// salt and expected key. ok is false for anything malformed, and for
// parameters far outside our configured costs (an attacker-controlled hash
// string must not be able to dictate pathological resource usage).
func decodeHash(encoded string) (memory, iterations uint32, parallelism uint8, salt, key []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, false
	}

	if parts[2] != fmt.Sprintf("v=%d", argonVersion) {
		return 0, 0, 0, nil, nil, false
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return 0, 0, 0, nil, nil, false
	}
	if mem == 0 || iter == 0 || par == 0 || par > 255 {
		return 0, 0, 0, nil, nil, false
	}
	if mem > argonMemoryKiB*2 || iter > argonIterations*2 {
		return 0, 0, 0, nil, nil, false
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) < 8 || len(salt) > 64 {
		return 0, 0, 0, nil, nil, false
	}
	key, err = b64.DecodeString(parts[5])
	if err != nil || len(key) < 16 || len(key) > 128 {
		return 0, 0, 0, nil, nil, false
	}

	return mem, iter, uint8(par), salt, key, true
}
