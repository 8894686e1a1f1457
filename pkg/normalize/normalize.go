// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

/*
Package normalize provides Unicode normalization for login identifiers.

Usernames and email addresses are run through NFKC before storage and lookup
so that visually confusable or differently-composed spellings of the same
identifier resolve to a single canonical account.

See https://www.unicode.org/reports/tr36/ for background on why this matters
for identifiers used in security decisions.
*/
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Identifier folds a login identifier into its canonical form.
//
// # Transformations
//
//  1. NFKC Unicode normalization (compatibility composition).
//  2. Whitespace trimming.
//  3. Lowercasing (usernames and emails are case-insensitive in Veridoc).
func Identifier(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// Email canonicalizes an email address for storage and comparison.
//
// The local part is technically case-sensitive per RFC 5321, but treating it
// as such causes far more account lockouts than it prevents collisions.
func Email(s string) string {
	return Identifier(s)
}
