// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package sec

// Identity is the authenticated caller of a request.
//
// # Lifecycle
//
// An Identity is derived per request from a valid bearer token plus a fresh
// repository lookup. It is owned exclusively by the request context that
// resolved it and is never cached across requests.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}
