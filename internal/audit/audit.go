// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
Package audit implements the append-only activity trail.

Security-relevant operations (registration, login, document upload and
deletion, verification decisions, admin changes) are recorded as events.

# Best Effort

Recording must never fail the operation being recorded: a broken trail is an
operational incident, a failed login because the trail is broken is an outage.
Failures are logged and swallowed.
*/
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/veridoc/veridoc/pkg/pagination"
	"github.com/veridoc/veridoc/pkg/uuid"
)

// # Domain Entities

// Event is a single entry in the activity trail.
type Event struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// # Data Access

// EventRepository defines the storage contract for audit events.
type EventRepository interface {

	/*
		Create appends an event to the trail.

		Parameters:
		  - context: context.Context
		  - event: *Event

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, event *Event) error

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
	List(context context.Context, params pagination.Params) ([]Event, int, error)
}

// # Recorder

// Recorder writes events to the trail, swallowing storage failures.
//
// It satisfies the narrow AuditRecorder interfaces declared by the domain
// services, so every domain depends on this one concrete implementation
// without importing it.
type Recorder struct {
	eventRepository EventRepository
	logger          *slog.Logger
}

// NewRecorder constructs a [Recorder].
func NewRecorder(eventRepo EventRepository, logger *slog.Logger) *Recorder {
	return &Recorder{eventRepository: eventRepo, logger: logger}
}

// Record appends an event. Failures are logged at Error and swallowed.
func (recorder *Recorder) Record(context context.Context, actorID, action, target string) {
	event := &Event{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		Target:    target,
		CreatedAt: time.Now(),
	}

	if err := recorder.eventRepository.Create(context, event); err != nil {
		recorder.logger.Error("audit_record_failed",
			slog.String("action", action),
			slog.String("actor_id", actorID),
			slog.Any("error", err),
		)
	}
}

// List returns a page of the trail plus pagination metadata.
func (recorder *Recorder) List(context context.Context, params pagination.Params) ([]Event, pagination.Meta, error) {
	events, total, err := recorder.eventRepository.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return events, pagination.NewMeta(params.Page, params.Limit, total), nil
}
