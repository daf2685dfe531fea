// Copyright (c) 2026 Smile. All rights reserved.

package auth

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/smilehq/smile-api/internal/platform/constants"
)

// RedisAttemptStore implements [AttemptStore] on Redis.
//
// Counters live under constants.RedisPrefixLoginAttempts and expire after
// constants.LoginAttemptWindow. Every operation is fail-open: if Redis is
// unreachable the throttle simply stops throttling and logs the error,
// because password verification must not depend on cache availability.
type RedisAttemptStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisAttemptStore constructs the Redis-backed login throttle.
func NewRedisAttemptStore(client *redis.Client, logger *slog.Logger) *RedisAttemptStore {
	return &RedisAttemptStore{client: client, logger: logger}
}

// TooManyFailures reports whether the identifier crossed the failure limit
// inside the current window.
func (store *RedisAttemptStore) TooManyFailures(ctx context.Context, login string) bool {
	count, err := store.client.Get(ctx, store.key(login)).Int()
	if err != nil {
		if err != redis.Nil {
			store.logger.Error("login throttle read failed", slog.Any("error", err))
		}
		return false
	}
	return count >= constants.LoginAttemptLimit
}

// RecordFailure bumps the failure counter and refreshes its window.
func (store *RedisAttemptStore) RecordFailure(ctx context.Context, login string) {
	key := store.key(login)

	pipe := store.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, constants.LoginAttemptWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		store.logger.Error("login throttle write failed", slog.Any("error", err))
	}
}

// Clear drops the failure counter after a successful login.
func (store *RedisAttemptStore) Clear(ctx context.Context, login string) {
	if err := store.client.Del(ctx, store.key(login)).Err(); err != nil {
		store.logger.Error("login throttle clear failed", slog.Any("error", err))
	}
}

func (store *RedisAttemptStore) key(login string) string {
	return constants.RedisPrefixLoginAttempts + login
}
