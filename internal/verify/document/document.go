// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
Package document implements the document registry of the verification platform.

A document is a user-owned record pointing at an uploaded file. Documents are
the unit of verification: each one can carry at most one verification record.

# Access Model

Owners and superusers see a document; everyone else gets Not Found. The
existence of another user's document is itself private information, so the
service never answers 403 for a document the caller cannot access.
*/
package document

import "time"

// # Domain Entities

// Document represents a registered upload owned by a single account.
type Document struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldFilePath = "file_path"
	FieldOwnerID  = "user_id"
)

// # Constraints

const (
	// MaxTitleLength bounds the title column.
	MaxTitleLength = 255

	// MaxFilePathLength bounds the stored path reference.
	MaxFilePathLength = 1024
)

// # Audit Actions

const (
	AuditActionUpload = "document_upload"
	AuditActionDelete = "document_delete"
)

// # Client-Facing Messages

const (
	// MsgDocumentNotFound covers both truly missing documents and documents
	// the caller is not allowed to see.
	MsgDocumentNotFound = "Document"
)
