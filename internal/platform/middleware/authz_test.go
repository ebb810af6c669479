// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtanh/abacus/internal/platform/ctxutil"
	"github.com/nvtanh/abacus/internal/platform/middleware"
	"github.com/nvtanh/abacus/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string and rejects everything else.
type fakeVerifier struct {
	acceptToken string
	claims      *sec.AuthClaims
}

func (verifier *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == verifier.acceptToken {
		return verifier.claims, nil
	}
	return nil, sec.ErrInvalidToken
}

/*
TestAuthenticate_ClaimsInjection exercises the full header-to-context path:
only a well-formed Bearer header carrying a verifiable token yields claims;
every other shape leaves the request anonymous without rejecting it.
*/
func TestAuthenticate_ClaimsInjection(t *testing.T) {
	verifier := &fakeVerifier{
		acceptToken: "good-token",
		claims:      &sec.AuthClaims{UserID: "user-123", Username: "alice"},
	}

	tests := []struct {
		name       string
		authHeader string
		wantClaims bool
	}{
		{"no_header", "", false},
		{"wrong_scheme", "Basic Zm9vOmJhcg==", false},
		{"bare_token_no_scheme", "good-token", false},
		{"empty_token", "Bearer ", false},
		{"extra_parts", "Bearer good-token trailing", false},
		{"invalid_token", "Bearer bad-token", false},
		{"valid_token", "Bearer good-token", true},
		{"lowercase_scheme", "bearer good-token", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *sec.AuthClaims
			probe := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				gotClaims = ctxutil.GetClaims(request.Context())
				writer.WriteHeader(http.StatusOK)
			})

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(verifier)(probe).ServeHTTP(recorder, request)

			// The middleware never rejects; protected routes do.
			assert.Equal(t, http.StatusOK, recorder.Code)

			if tt.wantClaims {
				require.NotNil(t, gotClaims)
				assert.Equal(t, "user-123", gotClaims.UserID)
				assert.Equal(t, "alice", gotClaims.Username)
				return
			}
			assert.Nil(t, gotClaims)
		})
	}
}

/*
TestAuthenticate_VerifierErrorIsAnonymous makes sure an arbitrary verifier
failure is treated exactly like an absent token.
*/
func TestAuthenticate_VerifierErrorIsAnonymous(t *testing.T) {
	verifier := &erroringVerifier{err: errors.New("backend unavailable")}

	called := false
	probe := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		called = true
		assert.Nil(t, ctxutil.GetClaims(request.Context()))
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer anything")
	recorder := httptest.NewRecorder()

	middleware.Authenticate(verifier)(probe).ServeHTTP(recorder, request)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

type erroringVerifier struct {
	err error
}

func (verifier *erroringVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, verifier.err
}
