// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Fixed validity window of 30 minutes from issuance; there is no
	// refresh mechanism, so an expired token requires a fresh login.
	AccessTokenTTL = 30 * time.Minute

	// TokenType is the scheme clients must use when presenting the token.
	TokenType = "bearer"

	// ConflictMessage is the generic duplicate-identity error. It must not
	// disclose which of the two fields collided.
	ConflictMessage = "Username or email already exists"

	// InvalidCredentialsMessage is the uniform authentication failure.
	// Unknown identifier and wrong password produce this exact message.
	InvalidCredentialsMessage = "Invalid login credentials"

	// VerificationTokenTTL is the duration an email verification token remains valid.
	// Long-lived (24 hours) as users might not check email immediately.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the random verification token.
	VerificationTokenLength = 32
)
