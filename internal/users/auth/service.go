// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/nvtanh/abacus/internal/platform/apperr"
	"github.com/nvtanh/abacus/internal/platform/sec"
	"github.com/nvtanh/abacus/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing,
// registration, or login logic must be reviewed by the security team.
type Service struct {
	userRepository              UserRepository
	verificationTokenRepository VerificationTokenRepository
	tokenProvider               TokenProvider

	// decoyDigest is verified against on the unknown-identifier login path
	// so that "no such user" and "wrong password" cost roughly the same.
	decoyDigest string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	verifyRepo VerificationTokenRepository,
	tokenProv TokenProvider,
) (*Service, error) {
	decoyDigest, err := sec.HashPassword("abacus-decoy-credential")
	if err != nil {
		return nil, fmt.Errorf("auth_service_decoy_digest_failed: %w", err)
	}

	return &Service{
		userRepository:              userRepo,
		verificationTokenRepository: verifyRepo,
		tokenProvider:               tokenProv,
		decoyDigest:                 decoyDigest,
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
initial verification token state. The pre-checks below give fast feedback,
but the database UNIQUE constraints remain the authority: a concurrent
registration racing past both checks still ends with exactly one success
and one Conflict.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. The generic message never names the field.
	_, err := service.userRepository.FindByLogin(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict(ConflictMessage)
	}

	// Verify username uniqueness. Same generic message.
	_, err = service.userRepository.FindByLogin(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict(ConflictMessage)
	}

	// Prevent storing plain-text passwords. The digest embeds its own salt,
	// so identical passwords never produce identical stored digests.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsVerified:   false,
	}

	// Persist the user to the database. A racing duplicate surfaces here as
	// the repository's Conflict, which passes through untouched.
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Generate and store a verification token in Redis as an async-ready side effect
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err == nil {
		_ = service.verificationTokenRepository.Set(context, token, user.ID, VerificationTokenTTL)
		// TODO: Trigger email service with the verification link
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established authentication.
type LoginSession struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *User
}

/*
Authenticate validates user credentials and issues an access token.

Description: Resolves the account by username or email, performs a
constant-time password comparison, stamps last_login_at, and mints a
short-lived JWT.

Unknown identifier and wrong password both return the identical
Unauthorized value — callers cannot distinguish the two, and the decoy
verification on the unknown path keeps the response times comparable.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session payload
  - err: Unauthorized or internal failures
*/
func (service *Service) Authenticate(context context.Context, input LoginInput) (*LoginSession, error) {

	// Single lookup path: identifier matched against username or email.
	user, err := service.userRepository.FindByLogin(context, input.Login)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == apperr.CodeNotFound {
			// Burn comparable CPU on the miss path before rejecting.
			_ = sec.CheckPasswordHash(input.Password, service.decoyDigest)
			return nil, apperr.Unauthorized(InvalidCredentialsMessage)
		}
		return nil, fmt.Errorf("auth_service_find_by_login_failed: %w", err)
	}

	// Verify password hash using constant-time comparison to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(InvalidCredentialsMessage)
	}

	// Stamp the successful authentication.
	now := time.Now()
	if err := service.userRepository.UpdateLastLogin(context, user.ID, now); err != nil {
		return nil, fmt.Errorf("auth_service_update_last_login_failed: %w", err)
	}
	user.LastLoginAt = &now

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		TokenType:   TokenType,
		ExpiresIn:   AccessTokenTTL,
		User:        user,
	}, nil
}

// # Email Verification

/*
VerifyEmail confirms a user's email address using a secure token.

Description: Resolves the single-use token from Redis and flips
is_verified. The flag is tracked but gates nothing downstream.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - err: Database or resolution errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {

	// Retrieve the user ID associated with the verification token from Redis
	userID, err := service.verificationTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Update the user's status to verified in persistent storage
	if err := service.userRepository.MarkVerified(context, userID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	// Cleanup the used verification token from Redis
	_ = service.verificationTokenRepository.Delete(context, token)

	return nil
}
