// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// Package middleware provides the HTTP middleware chain for the Veridoc API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN/AuthZ, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/constants"
	"github.com/veridoc/veridoc/internal/platform/ctxutil"
	"github.com/veridoc/veridoc/internal/platform/respond"
	"github.com/veridoc/veridoc/internal/platform/sec"
)

// IdentityResolver defines the interface needed to turn a bearer token into
// an authenticated identity.
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit testing.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*sec.Identity, error)
}

// Authenticate extracts and resolves the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, the scheme must be exactly "Bearer " (case-sensitive);
//     anything else is rejected rather than treated as anonymous, so a
//     client that sends a credential never silently loses it.
//  4. Resolve the token to a live [*sec.Identity] via [IdentityResolver].
//  5. Inject the identity into the request context for downstream use.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Scheme Validation ──────────────────────────────────────────
			if !strings.HasPrefix(authHeader, constants.BearerPrefix) {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			tokenString := authHeader[len(constants.BearerPrefix):]
			if strings.TrimSpace(tokenString) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), tokenString)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests unless the authenticated user is a superuser.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Check the superuser flag.
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !identity.IsSuperuser {
			respond.Error(writer, request, apperr.Forbidden("Admin access required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
