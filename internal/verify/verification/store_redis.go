// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// Redis implementation of the verification status cache.
package verification

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/veridoc/veridoc/internal/platform/constants"
)

// RedisStatusCache implements [StatusCache] on top of go-redis.
//
// # Failure Mode
//
// Every operation swallows its error after logging at Warn. The cache is an
// optimization; callers always have the Postgres row as the source of truth.
type RedisStatusCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStatusCache creates a Redis-backed [StatusCache].
func NewStatusCache(client *redis.Client, logger *slog.Logger) *RedisStatusCache {
	return &RedisStatusCache{client: client, logger: logger}
}

// cacheKey builds the namespaced Redis key for a document's status.
func cacheKey(documentID string) string {
	return constants.RedisPrefixVerificationStatus + documentID
}

// GetStatus returns the cached status, if a fresh entry exists.
func (cache *RedisStatusCache) GetStatus(context context.Context, documentID string) (string, bool) {
	status, err := cache.client.Get(context, cacheKey(documentID)).Result()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("verification_status_cache_get_failed",
				slog.String("document_id", documentID),
				slog.Any("error", err),
			)
		}
		return "", false
	}
	return status, true
}

// SetStatus stores the status with the package TTL.
func (cache *RedisStatusCache) SetStatus(context context.Context, documentID, status string) {
	if err := cache.client.Set(context, cacheKey(documentID), status, StatusCacheTTL).Err(); err != nil {
		cache.logger.Warn("verification_status_cache_set_failed",
			slog.String("document_id", documentID),
			slog.Any("error", err),
		)
	}
}

// Invalidate drops the cached entry. Called on every decision so that the
// next status read reflects the new terminal state immediately.
func (cache *RedisStatusCache) Invalidate(context context.Context, documentID string) {
	if err := cache.client.Del(context, cacheKey(documentID)).Err(); err != nil {
		cache.logger.Warn("verification_status_cache_invalidate_failed",
			slog.String("document_id", documentID),
			slog.Any("error", err),
		)
	}
}
