// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer at startup; there is no package-level singleton, so
// secret rotation and testing stay explicit.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Codec Errors

var (
	// ErrMissingSubject is returned by [TokenCodec.Encode] when the subject is empty.
	ErrMissingSubject = errors.New("sec: token subject must be non-empty")

	// ErrSigning is returned by [TokenCodec.Encode] when the signing operation fails.
	ErrSigning = errors.New("sec: token signing failed")

	// ErrMissingSecret is returned by [NewTokenCodec] when no secret is configured.
	ErrMissingSecret = errors.New("sec: signing secret must be configured")
)

// hmacMethods maps configuration names to the supported symmetric algorithms.
//
// Only the HMAC family is accepted: the codec holds a single shared secret,
// so asymmetric method names in configuration are a misconfiguration, not a
// fallback case.
var hmacMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// TokenCodec creates and validates signed, time-limited bearer tokens.
//
// # Statelessness
//
// The codec keeps no server-side session and no revocation list. A token is
// valid if and only if its signature verifies against the configured secret
// and the current time is before its expiration — [TokenCodec.Decode] is a
// pure function of wall-clock time and signature validity, never of prior
// calls. This enables horizontal scaling without shared session storage.
type TokenCodec struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	methodName string
	issuer     string
	defaultTTL time.Duration
}

// NewTokenCodec constructs a [TokenCodec] from immutable configuration.
//
// # Parameters
//   - secret: The shared HMAC secret. Required.
//   - algorithm: One of "HS256", "HS384", "HS512".
//   - issuer: The 'iss' claim stamped into every token.
//   - defaultTTL: Token lifetime used when [TokenCodec.Encode] is given a zero TTL.
func NewTokenCodec(secret, algorithm, issuer string, defaultTTL time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	method, ok := hmacMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", algorithm)
	}

	return &TokenCodec{
		secret:     []byte(secret),
		method:     method,
		methodName: algorithm,
		issuer:     issuer,
		defaultTTL: defaultTTL,
	}, nil
}

// DefaultTTL returns the configured default token lifetime.
func (codec *TokenCodec) DefaultTTL() time.Duration {
	return codec.defaultTTL
}

// Encode creates a signed token carrying the subject claim.
//
// # Parameters
//   - subject: The principal the token identifies (the username). Required.
//   - ttl: Token lifetime. A zero value selects the configured default.
//
// # Returns
//   - The compact JWT string, or [ErrMissingSubject] / [ErrSigning].
func (codec *TokenCodec) Encode(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	if ttl == 0 {
		ttl = codec.defaultTTL
	}

	currentTime := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    codec.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
	}

	token := jwt.NewWithClaims(codec.method, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", errors.Join(ErrSigning, err)
	}

	return signedToken, nil
}

// Decode verifies a token and extracts its subject.
//
// # Uniform Failure
//
// Every failure mode — bad signature, algorithm mismatch, expiry, malformed
// input, missing subject — collapses to ok == false. Callers must treat all
// of these identically ("not authenticated") and cannot branch on the failure
// subtype, which prevents leaking which check rejected the token.
func (codec *TokenCodec) Decode(tokenString string) (subject string, ok bool) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return codec.secret, nil
		},
		// Pin the configured algorithm so 'alg' substitution is rejected
		// before the key is ever used.
		jwt.WithValidMethods([]string{codec.methodName}),
		jwt.WithExpirationRequired(),
	)

	if err != nil || !token.Valid {
		return "", false
	}

	if claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}
