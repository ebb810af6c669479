// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/nvtanh/abacus/internal/platform/ctxutil"
	"github.com/nvtanh/abacus/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Look for an 'Authorization: Bearer <token>' header.
//  2. If absent OR malformed, the request proceeds as anonymous — both cases
//     are indistinguishable downstream, where protected routes reject them.
//  3. If present, parse and verify the JWT via [TokenVerifier]. Invalid and
//     expired tokens also leave the request anonymous.
//  4. On success, inject [*sec.AuthClaims] into the request context.
//
// This middleware never rejects by itself; the terminal decision belongs to
// the account gate mounted on protected route groups.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr := extractBearerToken(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				// A bad token is treated exactly like no token. Which check
				// failed is visible only in server-side logs.
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(),
					"token_verification_failed")
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the raw token from a well-formed
// 'Authorization: Bearer <token>' header, or "" for anything else.
func extractBearerToken(request *http.Request) string {
	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return ""
	}

	return parts[1]
}
