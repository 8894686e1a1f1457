// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package verification

import "context"

// # Verification Data Access

// VerificationRepository defines the data access contract for verifications.
type VerificationRepository interface {

	/*
		FindByDocumentID returns the verification attached to a document.

		Parameters:
		  - context: context.Context
		  - documentID: string

		Returns:
		  - *Verification: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByDocumentID(context context.Context, documentID string) (*Verification, error)

	/*
		Create persists a brand-new verification record.

		The docs.verification table has a UNIQUE constraint on documentid;
		a second create for the same document surfaces as a Conflict.

		Parameters:
		  - context: context.Context
		  - verification: *Verification

		Returns:
		  - error: Conflict or persistence failures
	*/
	Create(context context.Context, verification *Verification) error

	/*
		Update persists the decision fields of a verification.

		Parameters:
		  - context: context.Context
		  - verification: *Verification

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, verification *Verification) error
}

// # Volatile Status Cache

// StatusCache defines the contract for the short-lived status lookaside.
//
// All operations are best-effort: a cache failure must degrade to a database
// read, never to a request failure.
type StatusCache interface {

	/*
		GetStatus returns the cached status for a document.

		Returns:
		  - string: The cached status
		  - bool: Whether a fresh entry was found
	*/
	GetStatus(context context.Context, documentID string) (string, bool)

	/*
		SetStatus stores the status for a document with the package TTL.
	*/
	SetStatus(context context.Context, documentID, status string)

	/*
		Invalidate drops the cached entry for a document.
	*/
	Invalidate(context context.Context, documentID string)
}
