// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
Package verification implements the document verification workflow.

Each document carries at most one verification record. The record starts in
the pending state when a reviewer opens it and is finalized exactly once by a
decision, which stamps the outcome, the validity flag, and the decision time.

# Caching

Status lookups are the hot read path (partners poll them), so they are served
from a Redis cache with a short TTL and invalidated on decide. Only the
status string is cached; authentication state never touches Redis.
*/
package verification

import "time"

// # Status Lifecycle

const (
	// StatusPending is the initial state of every verification.
	StatusPending = "pending"

	// StatusApproved marks a document that passed review.
	StatusApproved = "approved"

	// StatusRejected marks a document that failed review.
	StatusRejected = "rejected"
)

// DecidableStatuses are the terminal states a reviewer may select.
var DecidableStatuses = []string{StatusApproved, StatusRejected}

// # Domain Entities

// Verification represents the review record attached to a document.
type Verification struct {
	ID           string     `json:"id"`
	DocumentID   string     `json:"document_id"`
	Status       string     `json:"status"`
	ResultDetail string     `json:"result_detail,omitempty"`
	IsValid      bool       `json:"is_valid"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsDecided reports whether the verification has reached a terminal state.
func (verification *Verification) IsDecided() bool {
	return verification.Status != StatusPending
}

// # Field Identifiers

const (
	FieldDocumentID   = "document_id"
	FieldStatus       = "status"
	FieldResultDetail = "result_detail"
	FieldIsValid      = "is_valid"
)

// # Constraints

const (
	// MaxResultDetailLength bounds the free-text outcome column.
	MaxResultDetailLength = 2048

	// StatusCacheTTL is how long a cached status entry stays fresh. Short,
	// because the decide flow also invalidates explicitly; the TTL only
	// covers writes that bypass this process.
	StatusCacheTTL = 5 * time.Minute
)

// # Audit Actions

const (
	AuditActionVerify = "verify_document"
)

// # Client-Facing Messages

const (
	MsgVerificationNotFound = "Verification"
	MsgAlreadyDecided       = "Verification already decided"
)
