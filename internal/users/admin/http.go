// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
HTTP delivery layer for superuser account administration.

# Security

All endpoints in this package are mounted behind the RequireAdmin middleware.
A non-superuser caller never reaches these handlers.
*/
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/veridoc/veridoc/internal/platform/request"
	"github.com/veridoc/veridoc/internal/platform/respond"
	"github.com/veridoc/veridoc/internal/platform/validate"
	"github.com/veridoc/veridoc/internal/users/auth"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// Handler implements the HTTP layer for account administration.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with the admin domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}", handler.updateUser)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

/*
GET /api/v1/admin/users.

Description: Lists all accounts with pagination.

Response:
  - 200: []User + Meta: Paginated accounts
  - 401/403: Authentication or authorization failure
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, meta, err := handler.adminService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

/*
GET /api/v1/admin/users/{id}.

Description: Retrieves a single account by ID.

Response:
  - 200: User: The account
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.adminService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the expected JSON payload for partial account updates.
type updateUserRequest struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

/*
PATCH /api/v1/admin/users/{id}.

Description: Applies partial updates to an account. Absent fields are left
unchanged.

Request:
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: Validation failure
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID := requestutil.ID(request, "id")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", userID)
	if input.Email != nil {
		validator.Email(auth.FieldEmail, *input.Email)
	}
	if input.Password != nil {
		validator.MinLen(auth.FieldPassword, *input.Password, auth.MinPasswordLength)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.adminService.UpdateUser(request.Context(), actor, userID, UpdateUserInput{
		Email:       input.Email,
		Password:    input.Password,
		IsActive:    input.IsActive,
		IsSuperuser: input.IsSuperuser,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/admin/users/{id}.

Description: Permanently removes an account and, via cascade, its documents.
Self-deletion is rejected.

Response:
  - 204: No Content: Account removed
  - 400: Validation: Attempted self-deletion
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.DeleteUser(request.Context(), actor, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
