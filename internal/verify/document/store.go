// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package document

import (
	"context"

	"github.com/veridoc/veridoc/pkg/pagination"
)

// # Document Data Access

// DocumentRepository defines the data access contract for documents.
type DocumentRepository interface {

	/*
		FindByID returns the document with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Document: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Document, error)

	/*
		ListByOwner returns a page of documents belonging to one account,
		newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - params: pagination.Params

		Returns:
		  - []Document: Page of entities
		  - int: Total count for this owner
		  - error: Database retrieval failures
	*/
	ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]Document, int, error)

	/*
		Create persists a brand-new document record.

		Parameters:
		  - context: context.Context
		  - document: *Document

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, document *Document) error

	/*
		Update persists changes to mutable document fields.

		Parameters:
		  - context: context.Context
		  - document: *Document

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, document *Document) error

	/*
		Delete permanently removes the document row. The attached
		verification (if any) is removed by ON DELETE CASCADE.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}
