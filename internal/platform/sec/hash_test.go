// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package sec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces a verifiable bcrypt hash", func(t *testing.T) {
		hash, err := HashPassword("s3cret-passw0rd")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt-format hash")
		assert.True(t, CheckPasswordHash("s3cret-passw0rd", hash))
	})

	t.Run("same plaintext yields distinct hashes", func(t *testing.T) {
		first, err := HashPassword("duplicate")
		require.NoError(t, err)
		second, err := HashPassword("duplicate")
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "bcrypt salts must differ per call")
		assert.True(t, CheckPasswordHash("duplicate", first))
		assert.True(t, CheckPasswordHash("duplicate", second))
	})

	t.Run("rejects empty plaintext", func(t *testing.T) {
		hash, err := HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
		assert.Empty(t, hash)
	})
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	testCases := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{name: "matching password", plaintext: "correct horse battery staple", hash: hash, want: true},
		{name: "wrong password", plaintext: "incorrect horse", hash: hash, want: false},
		{name: "empty password", plaintext: "", hash: hash, want: false},
		{name: "empty hash", plaintext: "correct horse battery staple", hash: "", want: false},
		{name: "malformed hash", plaintext: "correct horse battery staple", hash: "not-a-bcrypt-hash", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckPasswordHash(tc.plaintext, tc.hash))
		})
	}
}
