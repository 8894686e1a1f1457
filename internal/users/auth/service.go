// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
Package auth implements the core identity and access management (IAM) system.

It handles user registration, secure password hashing, credential verification,
and stateless bearer-token issuance and resolution.

Architecture:

  - Service: Orchestrates business logic (Register, Login, ResolveIdentity).
  - Repository: Abstracted interface for Postgres (Users).
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs via platform/sec.

Tokens are self-contained: there is no session table and no revocation list.
Every protected request re-reads the account row, so deleted accounts lose
access on their next request even while their token still verifies.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/pkg/normalize"
	"github.com/veridoc/veridoc/pkg/uuid"
)

// # Contracts & Types

// TokenCodec defines the contract for issuing and verifying bearer tokens.
type TokenCodec interface {
	// Encode creates a signed token for the subject. A zero ttl selects the
	// codec's configured default lifetime.
	Encode(subject string, ttl time.Duration) (string, error)

	// Decode verifies a token and extracts its subject. All failure modes
	// collapse to ok == false.
	Decode(token string) (subject string, ok bool)

	// DefaultTTL reports the configured default token lifetime.
	DefaultTTL() time.Duration
}

// AuditRecorder is the narrow slice of the audit trail the auth service needs.
//
// Recording is best-effort: implementations must not fail the calling
// operation when the trail cannot be written.
type AuditRecorder interface {
	Record(context context.Context, actorID, action, target string)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenCodec     TokenCodec
	auditRecorder  AuditRecorder
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, codec TokenCodec, recorder AuditRecorder) *Service {
	return &Service{
		userRepository: userRepo,
		tokenCodec:     codec,
		auditRecorder:  recorder,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrollment of a new member, normalizing the identifiers and
handling password hashing before persistence.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := normalize.Identifier(input.Username)
	email := normalize.Email(input.Email)

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsSuperuser:  false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.auditRecorder.Record(context, user.ID, AuditActionRegister, user.Username)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// TokenPair is the transport-ready result of a successful login.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

/*
Login validates user credentials and issues a bearer token.

Description: Verifies identity with a constant-time bcrypt comparison and
returns a signed access token whose subject is the username.

An unknown username and a wrong password produce the byte-identical error,
so the endpoint cannot be used to enumerate registered accounts.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *TokenPair: Access token plus metadata
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*TokenPair, error) {
	username := normalize.Identifier(input.Username)

	user, err := service.userRepository.FindByUsername(context, username)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized(MsgBadCredentials)
	}

	// Verify the password hash. bcrypt compares in constant time to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(MsgBadCredentials)
	}

	// Issue the short-lived access token. Zero TTL selects the configured default.
	accessToken, err := service.tokenCodec.Encode(user.Username, 0)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.auditRecorder.Record(context, user.ID, AuditActionLogin, user.Username)

	return &TokenPair{
		AccessToken: accessToken,
		TokenType:   BearerTokenType,
		ExpiresIn:   int64(service.tokenCodec.DefaultTTL() / time.Second),
	}, nil
}

// # Identity Resolution

/*
ResolveIdentity turns a raw bearer token into a live account identity.

Description: Decodes the token, then re-reads the account row so that the
identity always reflects the CURRENT database state. An account deleted after
token issuance fails here with Not Found even though its token still verifies.

Parameters:
  - context: context.Context
  - token: string (compact JWT, without the "Bearer " scheme)

Returns:
  - *sec.Identity: The resolved caller
  - error: Unauthorized (bad token) or NotFound (stale token)
*/
func (service *Service) ResolveIdentity(context context.Context, token string) (*sec.Identity, error) {
	subject, ok := service.tokenCodec.Decode(token)
	if !ok {
		return nil, apperr.Unauthorized(MsgInvalidToken)
	}

	user, err := service.userRepository.FindByUsername(context, subject)
	if err != nil {
		return nil, apperr.NotFound("User")
	}

	return user.ToIdentity(), nil
}

// # Bootstrap

/*
EnsureAdmin guarantees that a superuser account exists at startup.

Description: Idempotent bootstrap. If the configured admin username is
already present the call is a no-op; otherwise the account is created with
the superuser flag set.

Parameters:
  - context: context.Context
  - username, email, password: Seed credentials from configuration

Returns:
  - error: Persistence failures
*/
func (service *Service) EnsureAdmin(context context.Context, username, email, password string) error {
	username = normalize.Identifier(username)

	if _, err := service.userRepository.FindByUsername(context, username); err == nil {
		return nil
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_admin_hash_failed: %w", err)
	}

	admin := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        normalize.Email(email),
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsSuperuser:  true,
	}

	if err := service.userRepository.Create(context, admin); err != nil {
		return fmt.Errorf("auth_service_admin_create_failed: %w", err)
	}

	return nil
}
