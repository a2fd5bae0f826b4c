// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/internal/platform/constants"
	"github.com/hoangnmai/orderly/internal/platform/ctxutil"
	"github.com/hoangnmai/orderly/internal/platform/respond"
	"github.com/hoangnmai/orderly/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve opaque session
// tokens in middleware.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the session
// store implementation, allowing us to easily inject fakes during unit testing.
type SessionResolver interface {
	// Resolve maps a raw session token to the owning user ID.
	// Absent, revoked, or expired tokens return an error.
	Resolve(ctx context.Context, token string) (string, error)
}

// Authenticate extracts and resolves the session token from the request.
//
// # Flow
//  1. Look for the session cookie, then an 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, resolve the token through the [SessionResolver].
//  4. Inject a [*sec.Principal] into the request context for downstream use.
//
// A dead token (absent, revoked, expired) is treated as anonymous rather than
// rejected outright: route-level [RequireAuth] decides whether anonymity is
// acceptable. A session-store failure is not anonymity and surfaces as a 500.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := extractSessionToken(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Resolution ───────────────────────────────────────────
			userID, err := resolver.Resolve(request.Context(), token)
			if err != nil {
				// Only a dead token demotes the request to anonymous.
				if apperr.IsNotFound(err) {
					next.ServeHTTP(writer, request)
					return
				}
				respond.Error(writer, request, fmt.Errorf("middleware_session_resolve_failed: %w", err))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), &sec.Principal{
				UserID:       userID,
				SessionToken: token,
			})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// extractSessionToken pulls the opaque session token out of the transport.
// Cookie first (browser clients), Bearer header second (API clients).
func extractSessionToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
