// Copyright (c) 2026 Abacus. All rights reserved.
// Author: nv.tanh.dev@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtanh/abacus/internal/platform/respond"
	"github.com/nvtanh/abacus/internal/users/auth"
)

// Handler implements the HTTP layer for user account self-service.
//
// # Security
//
// All endpoints in this package are mounted behind the account gate
// ([auth.RequireAccount]), so the resolved account is always present in
// the request context.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Delete("/me", handler.deleteMe)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/me.

Description: Retrieves the private profile of the authenticated user.
The password digest is never serialized.

Response:
  - 200: User: Redacted user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DELETE /api/v1/me.

Description: Permanently deletes the authenticated user's account and,
by cascade, every calculation it owns.

Response:
  - 204: No Content: Account deleted successfully
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
