// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/platform/ctxutil"
	"github.com/hoangnmai/orderly/internal/platform/middleware"
)

// staticResolver returns a fixed resolution outcome for every token.
type staticResolver struct {
	userID string
	err    error
}

func (resolver staticResolver) Resolve(_ context.Context, _ string) (string, error) {
	return resolver.userID, resolver.err
}

func errorCodeFromBody(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Code
}

/*
TestAuthenticate_ValidToken verifies the principal lands in the request
context for downstream handlers.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	var seenUserID string
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		require.NotNil(t, principal)
		seenUserID = principal.UserID
		writer.WriteHeader(http.StatusOK)
	})

	handler := middleware.Authenticate(staticResolver{userID: "user-9"})(inner)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer some-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-9", seenUserID)
}

/*
TestAuthenticate_DeadToken checks that an unresolvable token demotes the
request to anonymous, leaving the rejection to RequireAuth.
*/
func TestAuthenticate_DeadToken(t *testing.T) {
	inner := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	resolver := staticResolver{err: apperr.NotFound("Session")}
	handler := middleware.Authenticate(resolver)(middleware.RequireAuth(inner))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer dead-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCodeFromBody(t, recorder))
}

/*
TestAuthenticate_StoreFailure asserts that a session-store outage is reported
as a server error rather than being mistaken for anonymity.
*/
func TestAuthenticate_StoreFailure(t *testing.T) {
	innerCalled := false
	inner := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		innerCalled = true
		writer.WriteHeader(http.StatusOK)
	})

	resolver := staticResolver{err: errors.New("connection refused")}
	handler := middleware.Authenticate(resolver)(middleware.RequireAuth(inner))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer some-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCodeFromBody(t, recorder))
	assert.False(t, innerCalled)
}
