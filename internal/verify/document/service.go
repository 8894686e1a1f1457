// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/internal/users/auth"
	"github.com/veridoc/veridoc/pkg/pagination"
	"github.com/veridoc/veridoc/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for the document registry.
type Service struct {
	documentRepository DocumentRepository
	auditRecorder      auth.AuditRecorder
	logger             *slog.Logger
}

// NewService constructs a new document [Service] with its dependencies.
func NewService(documentRepo DocumentRepository, recorder auth.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{
		documentRepository: documentRepo,
		auditRecorder:      recorder,
		logger:             logger,
	}
}

// canAccess reports whether the identity may see or mutate the document.
func canAccess(identity *sec.Identity, doc *Document) bool {
	return identity.IsSuperuser || doc.OwnerID == identity.UserID
}

// # Document Lifecycle

// CreateInput holds the data required to register a new document.
type CreateInput struct {
	Title    string
	FilePath string
}

/*
Create registers a new document owned by the caller.

Parameters:
  - context: context.Context
  - identity: *sec.Identity (the owner)
  - input: CreateInput

Returns:
  - *Document: Created entity
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, identity *sec.Identity, input CreateInput) (*Document, error) {
	doc := &Document{
		ID:         uuid.New(),
		OwnerID:    identity.UserID,
		Title:      input.Title,
		FilePath:   input.FilePath,
		UploadedAt: time.Now(),
	}

	if err := service.documentRepository.Create(context, doc); err != nil {
		return nil, fmt.Errorf("document_service_create_failed: %w", err)
	}

	service.auditRecorder.Record(context, identity.UserID, AuditActionUpload, doc.ID)

	return doc, nil
}

/*
Get retrieves a document the caller is allowed to see.

Description: Owners and superusers get the document; everyone else gets
Not Found, including for documents that DO exist but belong to someone else.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - documentID: string

Returns:
  - *Document: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, identity *sec.Identity, documentID string) (*Document, error) {
	doc, err := service.documentRepository.FindByID(context, documentID)
	if err != nil {
		return nil, err
	}

	if !canAccess(identity, doc) {
		// Same answer as a missing row: existence must not leak.
		return nil, apperr.NotFound(MsgDocumentNotFound)
	}

	return doc, nil
}

/*
List returns a page of the caller's documents.

Description: Regular users always list their own documents. A superuser may
pass ownerID to inspect any account's registry; for non-superusers the
parameter is ignored.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - ownerID: string (optional override, superuser only)
  - params: pagination.Params

Returns:
  - []Document: Page of entities
  - pagination.Meta: Page metadata
  - error: Storage failures
*/
func (service *Service) List(context context.Context, identity *sec.Identity, ownerID string, params pagination.Params) ([]Document, pagination.Meta, error) {
	target := identity.UserID
	if identity.IsSuperuser && ownerID != "" {
		target = ownerID
	}

	docs, total, err := service.documentRepository.ListByOwner(context, target, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("document_service_list_failed: %w", err)
	}

	return docs, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// UpdateInput defines the mutable subset of document fields.
type UpdateInput struct {
	Title    *string
	FilePath *string
}

/*
Update applies a partial set of changes to a document.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - documentID: string
  - input: UpdateInput

Returns:
  - *Document: The updated entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Update(context context.Context, identity *sec.Identity, documentID string, input UpdateInput) (*Document, error) {
	doc, err := service.Get(context, identity, documentID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Title != nil {
		doc.Title = *input.Title
	}

	// Apply delta updates
	if input.FilePath != nil {
		doc.FilePath = *input.FilePath
	}

	if err := service.documentRepository.Update(context, doc); err != nil {
		return nil, fmt.Errorf("document_service_update_failed: %w", err)
	}

	return doc, nil
}

/*
Delete permanently removes a document and its verification record.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - documentID: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, identity *sec.Identity, documentID string) error {
	// Access check first; a non-owner must not learn the row exists.
	if _, err := service.Get(context, identity, documentID); err != nil {
		return err
	}

	if err := service.documentRepository.Delete(context, documentID); err != nil {
		return fmt.Errorf("document_service_delete_failed: %w", err)
	}

	service.auditRecorder.Record(context, identity.UserID, AuditActionDelete, documentID)
	service.logger.Info("document_deleted",
		slog.String("document_id", documentID),
		slog.String("actor_id", identity.UserID),
	)

	return nil
}
