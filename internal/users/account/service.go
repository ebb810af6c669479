// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

// Package account provides profile management for authenticated users.
//
// It is a thin companion to the auth domain: the [auth.User] entity and its
// repository are the source of truth, and this package adds the self-service
// operations (view profile, delete account) on top of them.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nvtanh/abacus/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user account self-service.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
DeleteAccount permanently removes a user account.

Description: Hard-deletes the account row; the storage layer cascades the
deletion to every calculation the account owns, so no orphaned records
survive. Outstanding access tokens stop authorizing immediately because the
gate can no longer resolve the subject.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.userRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}
