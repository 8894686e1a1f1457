// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package sec

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext is passed to [HashPassword].
var ErrEmptyPassword = errors.New("sec: password must be a non-empty string")

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt embeds a random salt, so hashing the same plaintext twice produces
// different outputs, and the default cost keeps brute-force expensive without
// making registration spikes CPU-bound.
func HashPassword(plainTextPassword string) (string, error) {
	if plainTextPassword == "" {
		return "", ErrEmptyPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Join(errors.New("sec: failed to hash password"), err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// # Fail Closed
//
// This sits on the authentication hot path: empty inputs, malformed hashes,
// and any internal bcrypt error all return false rather than propagating.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if plainTextPassword == "" || existingHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
