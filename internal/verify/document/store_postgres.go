// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// PostgreSQL implementation of the document storage contract.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/dberr"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// # Document Repository

// PostgresDocumentRepository implements the DocumentRepository interface using pgx.
type PostgresDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new PostgreSQL implementation of the DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{pool: pool}
}

const documentColumns = "id, ownerid, title, filepath, uploadedat, createdat, updatedat"

func scanDocument(row pgx.Row) (*Document, error) {
	doc := &Document{}
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Title,
		&doc.FilePath,
		&doc.UploadedAt,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

/*
Create persists a new document record into the docs.document table.

Parameters:
  - context: context.Context
  - document: *Document

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresDocumentRepository) Create(context context.Context, document *Document) error {
	const query = `
		INSERT INTO docs.document (
			id, ownerid, title, filepath, uploadedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if document.CreatedAt.IsZero() {
		document.CreatedAt = now
	}
	document.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		document.ID,
		document.OwnerID,
		document.Title,
		document.FilePath,
		document.UploadedAt,
		document.CreatedAt,
		document.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_document_repo_create")
	}

	return nil
}

/*
FindByID retrieves a document record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Document: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresDocumentRepository) FindByID(context context.Context, id string) (*Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM docs.document
		WHERE id = $1`

	doc, err := scanDocument(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(MsgDocumentNotFound)
		}
		return nil, fmt.Errorf("postgres_document_repo_find_by_id_failed: %w", err)
	}

	return doc, nil
}

/*
ListByOwner returns a page of one account's documents, newest first.

Parameters:
  - context: context.Context
  - ownerID: string
  - params: pagination.Params

Returns:
  - []Document: Page of entities
  - int: Total count for this owner
  - error: Retrieval failures
*/
func (repository *PostgresDocumentRepository) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]Document, int, error) {
	const countQuery = "SELECT COUNT(*) FROM docs.document WHERE ownerid = $1"

	var total int
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_document_repo_count")
	}

	const query = `
		SELECT ` + documentColumns + `
		FROM docs.document
		WHERE ownerid = $1
		ORDER BY uploadedat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_document_repo_list")
	}
	defer rows.Close()

	documents := make([]Document, 0, params.Limit)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_document_repo_list_scan")
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_document_repo_list_rows")
	}

	return documents, total, nil
}

/*
Update persists changes to a document's mutable fields.

Parameters:
  - context: context.Context
  - document: *Document

Returns:
  - error: Update failures
*/
func (repository *PostgresDocumentRepository) Update(context context.Context, document *Document) error {
	const query = `
		UPDATE docs.document
		SET title = $2, filepath = $3, updatedat = $4
		WHERE id = $1`

	document.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		document.ID,
		document.Title,
		document.FilePath,
		document.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_document_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(MsgDocumentNotFound)
	}

	return nil
}

/*
Delete permanently removes the document row.

Description: Hard delete. The docs.verification FK cascades.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresDocumentRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM docs.document WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_document_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(MsgDocumentNotFound)
	}

	return nil
}
