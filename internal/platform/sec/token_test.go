// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnmai/orderly/internal/platform/sec"
)

/*
TestGenerateSecureToken checks uniqueness and URL-safe encoding.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	// base64url without padding: no +, /, or =
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
	assert.NotContains(t, first, "=")
}

/*
TestHashToken pins the deterministic hex digest used as the Redis key.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("some-token")

	assert.Len(t, digest, 64) // SHA-256 hex
	assert.Equal(t, digest, sec.HashToken("some-token"))
	assert.NotEqual(t, digest, sec.HashToken("other-token"))
}
