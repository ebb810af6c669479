// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtanh/abacus/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that every password verifies against
its own digest and against nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "Secret123"},
		{"empty", ""},
		{"whitespace", "   spaces   "},
		{"long_1000_chars", strings.Repeat("p4ss!", 200)},
		{"multibyte_unicode", "mật-khẩu-bí-mật-🔐𝔘𝔫𝔦"},
		{"exceeds_bcrypt_72_byte_cap", strings.Repeat("longer-than-bcrypt-allows-", 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := sec.HashPassword(tt.password)
			require.NoError(t, err)

			assert.NotEqual(t, tt.password, digest)
			assert.True(t, sec.CheckPasswordHash(tt.password, digest))
			assert.False(t, sec.CheckPasswordHash(tt.password+"x", digest))
		})
	}
}

/*
TestHashPassword_Salting proves two digests of the same input never match.
*/
func TestHashPassword_Salting(t *testing.T) {
	first, err := sec.HashPassword("Secret123")
	require.NoError(t, err)

	second, err := sec.HashPassword("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both still verify despite differing.
	assert.True(t, sec.CheckPasswordHash("Secret123", first))
	assert.True(t, sec.CheckPasswordHash("Secret123", second))
}

/*
TestHashPassword_NoTruncation makes sure content beyond 72 bytes still
participates in the digest: two passwords sharing a long prefix but
differing at the tail must not collide.
*/
func TestHashPassword_NoTruncation(t *testing.T) {
	prefix := strings.Repeat("a", 100)

	digest, err := sec.HashPassword(prefix + "ending-one")
	require.NoError(t, err)

	assert.False(t, sec.CheckPasswordHash(prefix+"ending-two", digest))
	assert.True(t, sec.CheckPasswordHash(prefix+"ending-one", digest))
}

/*
TestCheckPasswordHash_MalformedDigest covers the contract that a broken
digest is reported as a mismatch, never a panic or error.
*/
func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-digest"},
		{"wrong_algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing_sections", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad_version", "$argon2id$v=12$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad_params", "$argon2id$v=19$m=abc,t=1,p=4$c2FsdA$aGFzaA"},
		{"invalid_base64_salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"invalid_base64_key", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, sec.CheckPasswordHash("anything", tt.digest))
			})
		})
	}
}
