// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/internal/users/auth"
	"github.com/veridoc/veridoc/internal/verify/document"
	"github.com/veridoc/veridoc/pkg/uuid"
)

// # Contracts & Types

// DocumentDirectory is the narrow slice of the document domain this service
// needs: existence and ownership of the document under review.
type DocumentDirectory interface {
	FindByID(context context.Context, id string) (*document.Document, error)
}

// Service orchestrates the verification workflow.
type Service struct {
	verificationRepository VerificationRepository
	documentDirectory      DocumentDirectory
	statusCache            StatusCache
	auditRecorder          auth.AuditRecorder
	logger                 *slog.Logger
}

// NewService constructs a new verification [Service] with its dependencies.
func NewService(
	verificationRepo VerificationRepository,
	documents DocumentDirectory,
	cache StatusCache,
	recorder auth.AuditRecorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		verificationRepository: verificationRepo,
		documentDirectory:      documents,
		statusCache:            cache,
		auditRecorder:          recorder,
		logger:                 logger,
	}
}

// resolveDocument loads the document and applies the ownership rule: owners
// and superusers proceed, everyone else gets the same Not Found a missing
// document produces.
func (service *Service) resolveDocument(context context.Context, identity *sec.Identity, documentID string) (*document.Document, error) {
	doc, err := service.documentDirectory.FindByID(context, documentID)
	if err != nil {
		return nil, err
	}
	if !identity.IsSuperuser && doc.OwnerID != identity.UserID {
		return nil, apperr.NotFound(document.MsgDocumentNotFound)
	}
	return doc, nil
}

// # Review Lifecycle

/*
Open creates a pending verification for a document.

Description: Reviewer-only. The one-per-document invariant is enforced both
here (pre-check for a friendly message) and by the storage UNIQUE constraint
(for the race between two concurrent opens).

Parameters:
  - context: context.Context
  - actor: *sec.Identity (superuser, enforced by routing)
  - documentID: string

Returns:
  - *Verification: The pending record
  - error: NotFound (unknown document), Conflict (already opened), or storage failures
*/
func (service *Service) Open(context context.Context, actor *sec.Identity, documentID string) (*Verification, error) {
	if _, err := service.documentDirectory.FindByID(context, documentID); err != nil {
		return nil, err
	}

	if _, err := service.verificationRepository.FindByDocumentID(context, documentID); err == nil {
		return nil, apperr.Conflict("Verification already exists for this document")
	}

	verification := &Verification{
		ID:         uuid.New(),
		DocumentID: documentID,
		Status:     StatusPending,
	}

	if err := service.verificationRepository.Create(context, verification); err != nil {
		return nil, fmt.Errorf("verification_service_open_failed: %w", err)
	}

	service.statusCache.SetStatus(context, documentID, StatusPending)

	return verification, nil
}

/*
GetByDocument retrieves the verification attached to a document.

Parameters:
  - context: context.Context
  - identity: *sec.Identity (owner or superuser)
  - documentID: string

Returns:
  - *Verification: Hydrated record
  - error: NotFound or storage failures
*/
func (service *Service) GetByDocument(context context.Context, identity *sec.Identity, documentID string) (*Verification, error) {
	if _, err := service.resolveDocument(context, identity, documentID); err != nil {
		return nil, err
	}

	return service.verificationRepository.FindByDocumentID(context, documentID)
}

/*
Status returns the verification status for a document, served from cache
when possible.

Description: Cache hits skip both the document and verification reads. A miss
falls through to [GetByDocument] and primes the cache. Cache failures degrade
to the database silently.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - documentID: string

Returns:
  - string: One of pending/approved/rejected
  - error: NotFound or storage failures
*/
func (service *Service) Status(context context.Context, identity *sec.Identity, documentID string) (string, error) {
	// Ownership gate always runs; the cache must not leak foreign documents.
	if _, err := service.resolveDocument(context, identity, documentID); err != nil {
		return "", err
	}

	if status, ok := service.statusCache.GetStatus(context, documentID); ok {
		return status, nil
	}

	verification, err := service.verificationRepository.FindByDocumentID(context, documentID)
	if err != nil {
		return "", err
	}

	service.statusCache.SetStatus(context, documentID, verification.Status)

	return verification.Status, nil
}

// DecideInput holds the reviewer's terminal judgment.
type DecideInput struct {
	Status       string // approved or rejected
	ResultDetail string
	IsValid      bool
}

/*
Decide finalizes a pending verification.

Description: Stamps the terminal status, the validity flag, the free-text
detail, and the decision time. A verification can be decided exactly once;
the status cache entry is invalidated so the next poll sees the outcome.

Parameters:
  - context: context.Context
  - actor: *sec.Identity (superuser, enforced by routing)
  - documentID: string
  - input: DecideInput

Returns:
  - *Verification: The finalized record
  - error: NotFound, Conflict (already decided), or storage failures
*/
func (service *Service) Decide(context context.Context, actor *sec.Identity, documentID string, input DecideInput) (*Verification, error) {
	verification, err := service.verificationRepository.FindByDocumentID(context, documentID)
	if err != nil {
		return nil, err
	}

	if verification.IsDecided() {
		return nil, apperr.Conflict(MsgAlreadyDecided)
	}

	now := time.Now()
	verification.Status = input.Status
	verification.ResultDetail = input.ResultDetail
	verification.IsValid = input.IsValid
	verification.VerifiedAt = &now

	if err := service.verificationRepository.Update(context, verification); err != nil {
		return nil, fmt.Errorf("verification_service_decide_failed: %w", err)
	}

	service.statusCache.Invalidate(context, documentID)
	service.auditRecorder.Record(context, actor.UserID, AuditActionVerify, documentID)
	service.logger.Info("verification_decided",
		slog.String("document_id", documentID),
		slog.String("status", verification.Status),
		slog.String("actor_id", actor.UserID),
	)

	return verification, nil
}
