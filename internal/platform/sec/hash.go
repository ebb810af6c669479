// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password digests.
//
// # Why argon2id?
//
// bcrypt silently caps input at 72 bytes, which would truncate long or
// multi-byte passphrases. Argon2id has no input length limit, so passwords
// of any length and any Unicode content are hashed without preprocessing.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword hashes a plain-text password using argon2id with a fresh
// random salt. Two calls on the same input always produce different digests.
//
// The digest is PHC-encoded: $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plainTextPassword), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return digest, nil
}

// CheckPasswordHash compares a plain-text password with a PHC-encoded digest.
//
// It returns false for any mismatch OR any malformed digest — it never
// returns an error and never panics, so callers can treat the boolean as
// the single authentication signal.
func CheckPasswordHash(plainTextPassword, existingDigest string) bool {
	salt, expectedKey, memory, time, threads, ok := parseDigest(existingDigest)
	if !ok {
		return false
	}

	computedKey := argon2.IDKey([]byte(plainTextPassword), salt, time, memory, threads, uint32(len(expectedKey)))

	return subtle.ConstantTimeCompare(computedKey, expectedKey) == 1
}

// parseDigest decodes a PHC argon2id string into its salt, key, and parameters.
func parseDigest(digest string) (salt, key []byte, memory uint32, time uint32, threads uint8, ok bool) {
	parts := strings.Split(digest, "$")
	// ["", "argon2id", "v=19", "m=...,t=...,p=...", salt, key]
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, key, memory, time, threads, true
}
