// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veridoc/veridoc/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//  1. pgx.ErrNoRows       -> 404 Not Found
//  2. SQLSTATE 23505      -> 409 Conflict (unique constraint)
//  3. SQLSTATE 23503      -> 400 Validation (missing referenced row)
//  4. Anything else       -> 500 Internal, with the action preserved as cause context
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// WrapNotFound is like [Wrap] but names the missing resource, so handlers can
// return "Document not found" instead of the generic message.
func WrapNotFound(err error, resource, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}
