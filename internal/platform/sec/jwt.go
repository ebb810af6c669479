// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [TokenProvider] interface defined there.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen is the minimum byte length accepted for the HMAC signing key.
// Anything shorter than the HS256 block size weakens the signature.
const minSecretLen = 32

// ErrInvalidToken is returned by [TokenService.VerifyToken] for every
// rejection: malformed tokens, bad signatures, and expired tokens alike.
// Callers map it to a uniform authorization failure; the wrapped cause is
// for server-side logging only.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID and Username directly inside the JWT, handlers can
// echo identity information without a database query. The authorization gate
// still resolves the live account before trusting the request, so a token
// for a deactivated account never authorizes anything.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret and issuer are injected at construction — there is no
// package-level key. The secret must remain stable for the life of the
// process; rotating it invalidates all outstanding tokens.
type TokenService struct {
	secret []byte
	issuer string

	// now is the clock used for both issuance and verification.
	// Overridable in tests to pin expiry-boundary behavior.
	now func() time.Time
}

// NewTokenService creates a new TokenService from an injected secret.
// It rejects empty or short secrets so a misconfigured deployment fails at
// startup rather than minting forgeable tokens.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", minSecretLen)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the service using the given clock.
// Intended for tests that need deterministic expiry checks.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

// GenerateAccessToken creates a new signed JWT access token for a user.
//
// The token carries {sub, iss, iat, exp} plus abbreviated custom claims and
// expires exactly timeToLive after issuance.
func (service *TokenService) GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// Expiry is a hard, exclusive boundary with no clock-skew allowance: a token
// is valid strictly before its expiry instant and invalid from that exact
// instant on. All failure modes collapse into [ErrInvalidToken].
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
