// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// PostgreSQL implementation of the audit storage contract.
package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veridoc/veridoc/internal/platform/dberr"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// # Event Repository

// PostgresEventRepository implements the EventRepository interface using pgx.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new PostgreSQL implementation of the EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

/*
Create appends an event row to the audit.event table.

Description: The trail carries no foreign keys on purpose: events must
survive the deletion of the accounts and documents they reference.

Parameters:
  - context: context.Context
  - event: *Event

Returns:
  - error: Persistence failures
*/
func (repository *PostgresEventRepository) Create(context context.Context, event *Event) error {
	const query = `
		INSERT INTO audit.event (id, actorid, action, target, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(context, query,
		event.ID,
		event.ActorID,
		event.Action,
		event.Target,
		event.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_audit_repo_create")
	}

	return nil
}

/*
List returns a page of events, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Event: Page of entries
  - int: Total event count
  - error: Retrieval failures
*/
func (repository *PostgresEventRepository) List(context context.Context, params pagination.Params) ([]Event, int, error) {
	const countQuery = "SELECT COUNT(*) FROM audit.event"

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_audit_repo_count")
	}

	const query = `
		SELECT id, actorid, action, target, createdat
		FROM audit.event
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_audit_repo_list")
	}
	defer rows.Close()

	events := make([]Event, 0, params.Limit)
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.ActorID, &event.Action, &event.Target, &event.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_audit_repo_list_scan")
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_audit_repo_list_rows")
	}

	return events, total, nil
}
