// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nvtanh/abacus/internal/platform/apperr"
	"github.com/nvtanh/abacus/internal/platform/ctxkey"
	"github.com/nvtanh/abacus/internal/platform/ctxutil"
	"github.com/nvtanh/abacus/internal/platform/respond"
)

// # Authorization Gate

// gateRejectionMessage is the single 401 every rejected request receives,
// regardless of which check failed. The specific step is logged
// server-side only, so responses never aid credential guessing.
const gateRejectionMessage = "Invalid or missing credentials"

// RequireAccount is the terminal authorization gate for protected routes.
//
// # Flow
//  1. Requires verified claims injected by the Authenticate middleware;
//     an anonymous request (no token, malformed header, bad token) is rejected.
//  2. Resolves the live account for the claim subject via [UserRepository];
//     a token for a deleted account is rejected.
//  3. Rejects if the account's is_active flag is false.
//  4. On success, attaches the resolved [*User] to the request context.
//
// Every rejection is terminal and externally identical.
func RequireAccount(users UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			// ── 1. Claims Check ───────────────────────────────────────────────
			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				logger.DebugContext(request.Context(), "gate_rejected_no_claims")
				respond.Error(writer, request, apperr.Unauthorized(gateRejectionMessage))
				return
			}

			// ── 2. Account Resolution ─────────────────────────────────────────
			user, err := users.FindByID(request.Context(), claims.UserID)
			if err != nil {
				logger.DebugContext(request.Context(), "gate_rejected_unresolved_subject",
					slog.String("subject", claims.UserID))
				respond.Error(writer, request, apperr.Unauthorized(gateRejectionMessage))
				return
			}

			// ── 3. Liveness Check ─────────────────────────────────────────────
			if !user.IsActive {
				logger.DebugContext(request.Context(), "gate_rejected_inactive_account",
					slog.String("user_id", user.ID))
				respond.Error(writer, request, apperr.Unauthorized(gateRejectionMessage))
				return
			}

			// ── 4. Authorized ─────────────────────────────────────────────────
			ctx := WithAccount(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Context Helpers

// WithAccount returns a new context with the resolved account attached.
func WithAccount(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAccount, user)
}

// AccountFrom retrieves the gate-resolved [*User] from the context.
// Returns nil if the request never passed [RequireAccount].
func AccountFrom(ctx context.Context) *User {
	user, ok := ctx.Value(ctxkey.KeyAccount).(*User)
	if !ok {
		return nil
	}
	return user
}

// RequiredAccount returns the gate-resolved account or a uniform 401.
//
// Handlers mounted behind [RequireAccount] use this instead of re-resolving.
func RequiredAccount(ctx context.Context) (*User, error) {
	user := AccountFrom(ctx)
	if user == nil {
		return nil, apperr.Unauthorized(gateRejectionMessage)
	}
	return user, nil
}
