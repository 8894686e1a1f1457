// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// HTTP delivery layer for the audit trail. Superuser-only.
package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veridoc/veridoc/internal/platform/respond"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// Handler implements the audit trail's HTTP endpoints.
type Handler struct {
	recorder *Recorder
}

// NewHandler constructs a new audit [Handler].
func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

// Routes returns a [chi.Router] with the audit endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	return router
}

/*
GET /api/v1/admin/audit.

Description: Lists the activity trail, newest first, with pagination.

Response:
  - 200: []Event + Meta: Paginated trail
  - 401/403: Authentication or authorization failure
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	events, meta, err := handler.recorder.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, meta)
}
