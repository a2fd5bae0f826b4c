// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package auth_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnmai/orderly/internal/platform/constants"
	"github.com/hoangnmai/orderly/internal/platform/ctxutil"
	"github.com/hoangnmai/orderly/internal/users/auth"
)

// failingSessionRepository simulates a store outage during revocation.
type failingSessionRepository struct {
	*fakeSessionRepository
	revokeErr error
}

func (repo *failingSessionRepository) Revoke(ctx context.Context, token string) error {
	if repo.revokeErr != nil {
		return repo.revokeErr
	}
	return repo.fakeSessionRepository.Revoke(ctx, token)
}

/*
TestHandler_Logout_RevokeFailure pins the contract when revocation fails at
the store: the client still gets 204 with a cleared cookie, but the failure
is logged because the token stays live server-side.
*/
func TestHandler_Logout_RevokeFailure(t *testing.T) {
	sessions := &failingSessionRepository{
		fakeSessionRepository: newFakeSessionRepository(),
		revokeErr:             errors.New("connection refused"),
	}
	service := auth.NewService(newFakeUserRepository(), sessions, nil)
	router := auth.NewHandler(service).Routes()

	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "live-token"})
	request = request.WithContext(ctxutil.WithLogger(request.Context(), logger))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)

	// The cookie is cleared regardless
	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	var sessionCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == constants.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.Negative(t, sessionCookie.MaxAge)

	// The failed revocation is visible in logs
	assert.Contains(t, logBuffer.String(), "auth_logout_revoke_failed")
}

/*
TestHandler_Logout_DeadToken keeps the idempotent 204 for tokens that are
already gone.
*/
func TestHandler_Logout_DeadToken(t *testing.T) {
	service := auth.NewService(newFakeUserRepository(), newFakeSessionRepository(), nil)
	router := auth.NewHandler(service).Routes()

	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "never-issued"})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
