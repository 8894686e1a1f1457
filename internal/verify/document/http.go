// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
HTTP delivery layer for the document registry.

# Security

All endpoints require authentication (RequireAuth is applied by the router
mounting this handler). Ownership checks happen in the service layer.
*/
package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/veridoc/veridoc/internal/platform/request"
	"github.com/veridoc/veridoc/internal/platform/respond"
	"github.com/veridoc/veridoc/internal/platform/validate"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// Handler implements document-related HTTP endpoints.
type Handler struct {
	documentService *Service
}

// NewHandler constructs a new document [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{documentService: service}
}

// Routes returns a [chi.Router] configured with the document domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createDocumentRequest struct {
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}

type updateDocumentRequest struct {
	Title    *string `json:"title"`
	FilePath *string `json:"file_path"`
}

/*
POST /api/v1/documents.

Description: Registers a new document owned by the caller.

Request:
  - Body: createDocumentRequest (Title, FilePath)

Response:
  - 201: Document: Created entity
  - 400: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createDocumentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldFilePath, input.FilePath).
		MaxLen(FieldFilePath, input.FilePath, MaxFilePathLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.documentService.Create(request.Context(), identity, CreateInput{
		Title:    input.Title,
		FilePath: input.FilePath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, doc)
}

/*
GET /api/v1/documents.

Description: Lists the caller's documents. Superusers may pass ?user_id= to
inspect another account's registry.

Response:
  - 200: []Document + Meta: Paginated documents
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	ownerID := request.URL.Query().Get(FieldOwnerID)

	docs, meta, err := handler.documentService.List(request.Context(), identity, ownerID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, docs, meta)
}

/*
GET /api/v1/documents/{id}.

Description: Retrieves a single document. Non-owners without the superuser
flag get 404 regardless of whether the document exists.

Response:
  - 200: Document: The entity
  - 404: ErrNotFound: Unknown ID or foreign document
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", documentID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.documentService.Get(request.Context(), identity, documentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, doc)
}

/*
PATCH /api/v1/documents/{id}.

Description: Applies partial updates to a document's title or file path.

Response:
  - 200: Document: The updated entity
  - 404: ErrNotFound: Unknown ID or foreign document
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID := requestutil.ID(request, "id")

	var input updateDocumentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", documentID)
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.FilePath != nil {
		validator.Required(FieldFilePath, *input.FilePath).
			MaxLen(FieldFilePath, *input.FilePath, MaxFilePathLength)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.documentService.Update(request.Context(), identity, documentID, UpdateInput{
		Title:    input.Title,
		FilePath: input.FilePath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, doc)
}

/*
DELETE /api/v1/documents/{id}.

Description: Permanently removes a document and its verification record.

Response:
  - 204: No Content: Document removed
  - 404: ErrNotFound: Unknown ID or foreign document
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", documentID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.documentService.Delete(request.Context(), identity, documentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
