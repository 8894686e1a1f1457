// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, "HS256", "veridoc.test", 30*time.Minute)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewTokenCodec("", "HS256", "veridoc.test", time.Minute)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("rejects unsupported algorithm", func(t *testing.T) {
		_, err := NewTokenCodec(testSecret, "RS256", "veridoc.test", time.Minute)
		assert.Error(t, err)
	})

	t.Run("accepts every HMAC variant", func(t *testing.T) {
		for _, algorithm := range []string{"HS256", "HS384", "HS512"} {
			codec, err := NewTokenCodec(testSecret, algorithm, "veridoc.test", time.Minute)
			require.NoError(t, err, algorithm)

			token, err := codec.Encode("alice", time.Minute)
			require.NoError(t, err, algorithm)

			subject, ok := codec.Decode(token)
			assert.True(t, ok, algorithm)
			assert.Equal(t, "alice", subject, algorithm)
		}
	})
}

func TestTokenCodec_Encode(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("round trips the subject", func(t *testing.T) {
		token, err := codec.Encode("alice", time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, ok := codec.Decode(token)
		assert.True(t, ok)
		assert.Equal(t, "alice", subject)
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		token, err := codec.Encode("", time.Minute)
		assert.ErrorIs(t, err, ErrMissingSubject)
		assert.Empty(t, token)
	})

	t.Run("zero TTL selects the configured default", func(t *testing.T) {
		token, err := codec.Encode("alice", 0)
		require.NoError(t, err)

		subject, ok := codec.Decode(token)
		assert.True(t, ok)
		assert.Equal(t, "alice", subject)
	})
}

func TestTokenCodec_Decode(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := codec.Encode("alice", -1*time.Second)
		require.NoError(t, err)

		subject, ok := codec.Decode(token)
		assert.False(t, ok)
		assert.Empty(t, subject)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		otherCodec, err := NewTokenCodec("a-completely-different-secret", "HS256", "veridoc.test", time.Minute)
		require.NoError(t, err)

		token, err := otherCodec.Encode("alice", time.Minute)
		require.NoError(t, err)

		_, ok := codec.Decode(token)
		assert.False(t, ok)
	})

	t.Run("rejects an algorithm mismatch", func(t *testing.T) {
		// Same secret, different HMAC variant. The pinned method list must
		// reject the token even though the signature would verify.
		hs512Codec, err := NewTokenCodec(testSecret, "HS512", "veridoc.test", time.Minute)
		require.NoError(t, err)

		token, err := hs512Codec.Encode("alice", time.Minute)
		require.NoError(t, err)

		_, ok := codec.Decode(token)
		assert.False(t, ok)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, tokenString := range []string{"", "garbage", "a.b.c", "header.payload"} {
			subject, ok := codec.Decode(tokenString)
			assert.False(t, ok, tokenString)
			assert.Empty(t, subject, tokenString)
		}
	})
}
