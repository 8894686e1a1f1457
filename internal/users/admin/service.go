// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
Package admin implements superuser-only account administration.

It provides listing, inspection, partial update, and removal of any account
on the platform. The package operates on the auth domain's [auth.User] entity
and repository; it adds policy, not storage.

# Security

Every operation here assumes the caller has already passed the RequireAdmin
middleware. The service enforces the one rule that middleware cannot: an
administrator may never delete their own account.
*/
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/internal/users/auth"
	"github.com/veridoc/veridoc/pkg/normalize"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// # Audit Actions

const (
	AuditActionUserUpdate = "admin_user_update"
	AuditActionUserDelete = "admin_user_delete"
)

// # Service Layer

// Service orchestrates administrative account operations.
type Service struct {
	userRepository auth.UserRepository
	auditRecorder  auth.AuditRecorder
	logger         *slog.Logger
}

// NewService constructs a new admin [Service] with its dependencies.
func NewService(userRepo auth.UserRepository, recorder auth.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		auditRecorder:  recorder,
		logger:         logger,
	}
}

/*
ListUsers returns a page of accounts plus pagination metadata.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []auth.User: Page of accounts
  - pagination.Meta: Page metadata
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]auth.User, pagination.Meta, error) {
	users, total, err := service.userRepository.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("admin_service_list_users_failed: %w", err)
	}
	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetUser retrieves any account by its ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated account
  - error: Not found or execution failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput defines the mutable subset of account fields.
//
// Nil pointers mean "leave unchanged"; partial updates never clobber fields
// the caller did not send.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	IsActive    *bool
	IsSuperuser *bool
}

/*
UpdateUser applies a partial set of changes to an account.

Description: Fetches the existing account state, overlays provided fields,
and synchronizes the change to persistent storage. A password change is
re-hashed and written separately from the profile fields.

Parameters:
  - context: context.Context
  - actor: *sec.Identity (the administrator performing the change)
  - userID: string
  - input: UpdateUserInput

Returns:
  - *auth.User: The updated account
  - error: Not found, validation, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, actor *sec.Identity, userID string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = normalize.Email(*input.Email)
	}

	// Apply delta updates
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	// Apply delta updates
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("admin_service_update_user_failed: %w", err)
	}

	// Password rotation is a separate write against the hash column only.
	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("admin_service_update_hash_failed: %w", err)
		}
		if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
			return nil, fmt.Errorf("admin_service_update_password_failed: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	service.auditRecorder.Record(context, actor.UserID, AuditActionUserUpdate, user.ID)
	service.logger.Info("admin_user_updated",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", user.ID),
	)

	return user, nil
}

/*
DeleteUser permanently removes an account.

Description: Hard delete with cascade to the account's documents. The one
account an administrator can never remove is their own; locking yourself out
of the last superuser seat is not a recoverable state.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - userID: string

Returns:
  - error: Validation, not found, or execution failures
*/
func (service *Service) DeleteUser(context context.Context, actor *sec.Identity, userID string) error {
	if actor.UserID == userID {
		return apperr.ValidationError("Cannot delete self")
	}

	if err := service.userRepository.Delete(context, userID); err != nil {
		return err
	}

	service.auditRecorder.Record(context, actor.UserID, AuditActionUserDelete, userID)
	service.logger.Warn("admin_user_deleted",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", userID),
	)

	return nil
}
