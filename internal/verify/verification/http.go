// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
HTTP delivery layer for the verification workflow.

# Security

Reading a verification or its status requires authentication plus ownership
(or the superuser flag). Opening and deciding are superuser-only and mounted
behind RequireAdmin.
*/
package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veridoc/veridoc/internal/platform/constants"
	"github.com/veridoc/veridoc/internal/platform/middleware"
	requestutil "github.com/veridoc/veridoc/internal/platform/request"
	"github.com/veridoc/veridoc/internal/platform/respond"
	"github.com/veridoc/veridoc/internal/platform/validate"
)

// Handler implements verification-related HTTP endpoints.
type Handler struct {
	verificationService *Service
}

// NewHandler constructs a new verification [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{verificationService: service}
}

// Routes returns a [chi.Router] configured with the verification domain's endpoints.
//
// # Endpoints
//   - GET  /document/{documentID}        : The full verification record (owner/admin).
//   - GET  /document/{documentID}/status : Cached status poll (owner/admin).
//   - POST /document/{documentID}        : Open a pending verification (admin).
//   - POST /document/{documentID}/decide : Finalize a verification (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/document/{documentID}", handler.getByDocument)
	router.Get("/document/{documentID}/status", handler.status)

	// Reviewer endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/document/{documentID}", handler.open)
		r.Post("/document/{documentID}/decide", handler.decide)
	})

	return router
}

// documentIDParam extracts and validates the documentID URL parameter.
func documentIDParam(request *http.Request) (string, error) {
	documentID := requestutil.Param(request, "documentID")
	validator := &validate.Validator{}
	if err := validator.UUID(FieldDocumentID, documentID).Err(); err != nil {
		return "", err
	}
	return documentID, nil
}

/*
POST /api/v1/verifications/document/{documentID}.

Description: Opens a pending verification for the document.

Response:
  - 201: Verification: The pending record
  - 404: ErrNotFound: Unknown document
  - 409: ErrConflict: Verification already exists
*/
func (handler *Handler) open(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID, err := documentIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	verification, err := handler.verificationService.Open(request.Context(), actor, documentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, verification)
}

/*
GET /api/v1/verifications/document/{documentID}.

Description: Retrieves the full verification record for a document.

Response:
  - 200: Verification: The record
  - 404: ErrNotFound: Unknown document, foreign document, or no verification yet
*/
func (handler *Handler) getByDocument(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID, err := documentIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	verification, err := handler.verificationService.GetByDocument(request.Context(), identity, documentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, verification)
}

/*
GET /api/v1/verifications/document/{documentID}/status.

Description: Lightweight status poll served from the Redis cache when fresh.

Response:
  - 200: {status}: One of pending/approved/rejected
  - 404: ErrNotFound: Unknown document, foreign document, or no verification yet
*/
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID, err := documentIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.verificationService.Status(request.Context(), identity, documentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldStatus: status})
}

// decideRequest defines the reviewer's judgment payload.
type decideRequest struct {
	Status       string `json:"status"`
	ResultDetail string `json:"result_detail"`
	IsValid      bool   `json:"is_valid"`
}

/*
POST /api/v1/verifications/document/{documentID}/decide.

Description: Finalizes a pending verification with a terminal status.

Request:
  - Body: decideRequest (Status, ResultDetail, IsValid)

Response:
  - 200: Verification: The finalized record
  - 400: Validation: Status outside approved/rejected
  - 404: ErrNotFound: No verification for this document
  - 409: ErrConflict: Already decided
*/
func (handler *Handler) decide(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID, err := documentIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input decideRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, DecidableStatuses...).
		MaxLen(FieldResultDetail, input.ResultDetail, MaxResultDetailLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	verification, err := handler.verificationService.Decide(request.Context(), actor, documentID, DecideInput{
		Status:       input.Status,
		ResultDetail: input.ResultDetail,
		IsValid:      input.IsValid,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, verification)
}
