// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvtanh/abacus/internal/api"
)

func newHealthHandlers(dbErr, cacheErr error) (liveness, readiness http.HandlerFunc) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return dbErr },
		CheckCache:    func() error { return cacheErr },
	}, logger)
}

/*
TestHealth_Liveness always reports ok while the process is running,
regardless of dependency state.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := newHealthHandlers(errors.New("db down"), nil)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestHealth_Readiness reports ready only when every dependency check passes.
*/
func TestHealth_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		cacheErr   error
		wantCode   int
		wantStatus string
	}{
		{"all_healthy", nil, nil, http.StatusOK, "ready"},
		{"database_down", errors.New("db down"), nil, http.StatusServiceUnavailable, "degraded"},
		{"cache_down", nil, errors.New("redis down"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := newHealthHandlers(tt.dbErr, tt.cacheErr)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantStatus)
		})
	}
}
