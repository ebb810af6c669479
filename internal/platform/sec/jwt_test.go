// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtanh/abacus/internal/platform/sec"
)

const (
	testSecret = "test-secret-key-of-at-least-32-bytes!"
	testIssuer = "abacus.app"
	testTTL    = 30 * time.Minute
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(testSecret, testIssuer)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsWeakSecret verifies the constructor fails fast
when the signing key is missing or below the HS256 block size.
*/
func TestNewTokenService_RejectsWeakSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "too-short"},
		{"thirty_one_bytes", "0123456789012345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := sec.NewTokenService(tt.secret, testIssuer)
			assert.Error(t, err)
			assert.Nil(t, service)
		})
	}
}

/*
TestTokenService_RoundTrip issues a token and verifies the claims survive
the trip intact, including the subject being the account ID.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	tokenStr, err := service.GenerateAccessToken("user-123", "alice", testTTL)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := service.VerifyToken(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, testIssuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, testTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

/*
TestTokenService_ExpiryBoundary pins the hard, exclusive expiry boundary
with a fixed clock: a token is valid one second before its expiry instant
and invalid from that exact instant on. No skew allowance exists in either
direction.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	expiresAt := issuedAt.Add(testTTL)

	issuer := newTestTokenService(t).WithClock(func() time.Time { return issuedAt })

	tokenStr, err := issuer.GenerateAccessToken("user-123", "alice", testTTL)
	require.NoError(t, err)

	tests := []struct {
		name      string
		verifyAt  time.Time
		wantValid bool
	}{
		{"just_issued", issuedAt, true},
		{"midway", issuedAt.Add(testTTL / 2), true},
		{"one_second_before_expiry", expiresAt.Add(-time.Second), true},
		{"exactly_at_expiry", expiresAt, false},
		{"one_second_after_expiry", expiresAt.Add(time.Second), false},
		{"long_after_expiry", expiresAt.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := newTestTokenService(t).WithClock(func() time.Time { return tt.verifyAt })

			claims, err := verifier.VerifyToken(tokenStr)
			if tt.wantValid {
				require.NoError(t, err)
				assert.Equal(t, "user-123", claims.Subject)
				return
			}

			assert.ErrorIs(t, err, sec.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

/*
TestTokenService_RejectionsCollapse verifies that every failure mode —
garbage input, tampering, a foreign signing key, a wrong issuer — surfaces
as the same ErrInvalidToken.
*/
func TestTokenService_RejectionsCollapse(t *testing.T) {
	service := newTestTokenService(t)

	validToken, err := service.GenerateAccessToken("user-123", "alice", testTTL)
	require.NoError(t, err)

	foreignService, err := sec.NewTokenService("another-secret-that-is-32-bytes!!", testIssuer)
	require.NoError(t, err)
	foreignToken, err := foreignService.GenerateAccessToken("user-123", "alice", testTTL)
	require.NoError(t, err)

	wrongIssuerService, err := sec.NewTokenService(testSecret, "someone-else.app")
	require.NoError(t, err)
	wrongIssuerToken, err := wrongIssuerService.GenerateAccessToken("user-123", "alice", testTTL)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"tampered_payload", tamperToken(validToken)},
		{"foreign_signing_key", foreignToken},
		{"wrong_issuer", wrongIssuerToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.VerifyToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

// tamperToken flips the last character of a compact JWT so the signature
// no longer matches its content.
func tamperToken(token string) string {
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	return token[:len(token)-1] + string(replacement)
}
