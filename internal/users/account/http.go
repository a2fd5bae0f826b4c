// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoangnmai/orderly/internal/platform/constants"
	"github.com/hoangnmai/orderly/internal/platform/middleware"
	requestutil "github.com/hoangnmai/orderly/internal/platform/request"
	"github.com/hoangnmai/orderly/internal/platform/respond"
	"github.com/hoangnmai/orderly/internal/platform/validate"
	"github.com/hoangnmai/orderly/internal/users/auth"
	"github.com/hoangnmai/orderly/pkg/pointer"
)

// # Definitions & Constructors

// Handler implements the authenticated account management endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] for the /account resource.
//
// # Endpoints
//   - GET    / : Current user's profile.
//   - PUT    / : Partial profile update.
//   - DELETE / : Password-guarded account deletion.
//
// Every route requires a live session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getProfile)
	router.Put("/", handler.updateProfile)
	router.Delete("/", handler.deleteAccount)

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

/*
GetProfile returns the caller's own profile.

GET /api/v1/account

Response:
  - 200: User: Current profile
  - 401: ErrUnauthorized: No live session
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile applies a partial update to the caller's profile.

PUT /api/v1/account

Request:
  - Body: updateProfileRequest (Username?, Email?)

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Empty change set or invalid fields
  - 409: ErrConflict: Email already registered to another account
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(auth.FieldUsername, pointer.Val(input.Username)).
			MinLen(auth.FieldUsername, pointer.Val(input.Username), auth.MinUsernameLength)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, pointer.Val(input.Email)).
			Email(auth.FieldEmail, pointer.Val(input.Email))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteAccount permanently removes the caller's account.

DELETE /api/v1/account

Description: Requires the current password in the body. On success the
session cookie is cleared alongside the server-side revocation.

Request:
  - Body: deleteAccountRequest (Password)

Response:
  - 204: No Content: Account removed
  - 401: ErrUnauthorized: Password mismatch (account untouched)
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deleteAccountRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}
