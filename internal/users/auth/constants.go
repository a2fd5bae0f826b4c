// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the fixed lifetime of a session token.
	// The window is measured from issuance and does not slide on use.
	SessionTokenTTL = 7 * 24 * time.Hour

	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32

	// MinUsernameLength is the shortest acceptable username.
	MinUsernameLength = 3

	// MinPasswordLength is the shortest acceptable password.
	MinPasswordLength = 8
)
