// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package auth

// # Authentication Constraints

const (
	// MinUsernameLength keeps usernames readable and index-friendly.
	MinUsernameLength = 3

	// MaxUsernameLength bounds the column and the login form alike.
	MaxUsernameLength = 64

	// MinPasswordLength is the weakest password the platform accepts.
	MinPasswordLength = 8

	// BearerTokenType is the token_type value returned by the login endpoint.
	BearerTokenType = "bearer"
)

// # Audit Actions

const (
	AuditActionRegister = "user_register"
	AuditActionLogin    = "user_login"
)

// # Client-Facing Messages

const (
	// MsgBadCredentials is returned for BOTH unknown usernames and wrong
	// passwords. The two cases must stay indistinguishable to the caller,
	// otherwise the login endpoint becomes a username oracle.
	MsgBadCredentials = "Incorrect username or password"

	// MsgInvalidToken is returned when a bearer token fails verification.
	MsgInvalidToken = "Invalid token"

	// MsgUserNotFound is returned when a valid token references an account
	// that no longer exists (deleted after the token was issued).
	MsgUserNotFound = "User not found"
)
