// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package ctxutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veridoc/veridoc/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx), "bare context carries no request ID")

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), GetLogger(ctx), "falls back to the default logger")

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx = WithLogger(ctx, logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestIdentity(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetIdentity(ctx), "anonymous request resolves to nil identity")

	identity := &sec.Identity{UserID: "u-1", Username: "alice", IsSuperuser: true}
	ctx = WithIdentity(ctx, identity)
	assert.Same(t, identity, GetIdentity(ctx))
}
