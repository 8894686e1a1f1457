// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// PostgreSQL implementation of the verification storage contract.
package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/dberr"
)

// # Verification Repository

// PostgresVerificationRepository implements the VerificationRepository interface using pgx.
type PostgresVerificationRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationRepository creates a new PostgreSQL implementation of the VerificationRepository.
func NewVerificationRepository(pool *pgxpool.Pool) *PostgresVerificationRepository {
	return &PostgresVerificationRepository{pool: pool}
}

const verificationColumns = "id, documentid, status, resultdetail, isvalid, verifiedat, createdat, updatedat"

func scanVerification(row pgx.Row) (*Verification, error) {
	verification := &Verification{}
	err := row.Scan(
		&verification.ID,
		&verification.DocumentID,
		&verification.Status,
		&verification.ResultDetail,
		&verification.IsValid,
		&verification.VerifiedAt,
		&verification.CreatedAt,
		&verification.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return verification, nil
}

/*
Create persists a new verification record into the docs.verification table.

Description: The UNIQUE constraint on documentid enforces the one-per-document
invariant at the storage layer; violations map to 409 Conflict.

Parameters:
  - context: context.Context
  - verification: *Verification

Returns:
  - error: Conflict, constraint, or connectivity errors
*/
func (repository *PostgresVerificationRepository) Create(context context.Context, verification *Verification) error {
	const query = `
		INSERT INTO docs.verification (
			id, documentid, status, resultdetail, isvalid, verifiedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if verification.CreatedAt.IsZero() {
		verification.CreatedAt = now
	}
	verification.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		verification.ID,
		verification.DocumentID,
		verification.Status,
		verification.ResultDetail,
		verification.IsValid,
		verification.VerifiedAt,
		verification.CreatedAt,
		verification.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_verification_repo_create")
	}

	return nil
}

/*
FindByDocumentID retrieves the verification attached to a document.

Parameters:
  - context: context.Context
  - documentID: string

Returns:
  - *Verification: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresVerificationRepository) FindByDocumentID(context context.Context, documentID string) (*Verification, error) {
	const query = `
		SELECT ` + verificationColumns + `
		FROM docs.verification
		WHERE documentid = $1`

	verification, err := scanVerification(repository.pool.QueryRow(context, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(MsgVerificationNotFound)
		}
		return nil, fmt.Errorf("postgres_verification_repo_find_failed: %w", err)
	}

	return verification, nil
}

/*
Update persists the decision fields of a verification.

Parameters:
  - context: context.Context
  - verification: *Verification

Returns:
  - error: Update failures
*/
func (repository *PostgresVerificationRepository) Update(context context.Context, verification *Verification) error {
	const query = `
		UPDATE docs.verification
		SET status = $2, resultdetail = $3, isvalid = $4, verifiedat = $5, updatedat = $6
		WHERE id = $1`

	verification.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		verification.ID,
		verification.Status,
		verification.ResultDetail,
		verification.IsValid,
		verification.VerifiedAt,
		verification.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_verification_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(MsgVerificationNotFound)
	}

	return nil
}
