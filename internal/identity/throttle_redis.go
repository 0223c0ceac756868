// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
)

// RedisThrottle implements [LoginThrottle] with Redis counters, so every
// server instance sees the same failures.
//
// Each key is an integer counter whose TTL is the lockout window, started by
// the first failure.
type RedisThrottle struct {
	client      redis.Cmdable
	maxFailures int
	lockout     time.Duration
}

// NewRedisThrottle creates a Redis-backed throttle.
func NewRedisThrottle(client redis.Cmdable, maxFailures int, lockout time.Duration) *RedisThrottle {
	return &RedisThrottle{client: client, maxFailures: maxFailures, lockout: lockout}
}

func (throttle *RedisThrottle) key(key string) string {
	return constants.RedisPrefixLoginFailures + key
}

/*
Locked implements [LoginThrottle].

Returns:
  - time.Duration: remaining lockout, zero when the key may try
  - error: connectivity errors
*/
func (throttle *RedisThrottle) Locked(context context.Context, key string) (time.Duration, error) {
	redisKey := throttle.key(key)

	count, err := throttle.client.Get(context, redisKey).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}

	if count < throttle.maxFailures {
		return 0, nil
	}

	remaining, err := throttle.client.TTL(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_ttl_failed: %w", err)
	}
	if remaining <= 0 {
		// Key without expiry or already gone; treat as a full window.
		return throttle.lockout, nil
	}
	return remaining, nil
}

// Fail implements [LoginThrottle].
func (throttle *RedisThrottle) Fail(context context.Context, key string) error {
	redisKey := throttle.key(key)

	count, err := throttle.client.Incr(context, redisKey).Result()
	if err != nil {
		return fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	if count == 1 {
		if err := throttle.client.Expire(context, redisKey, throttle.lockout).Err(); err != nil {
			return fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}
	return nil
}

// Reset implements [LoginThrottle].
func (throttle *RedisThrottle) Reset(context context.Context, key string) error {
	if err := throttle.client.Del(context, throttle.key(key)).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_del_failed: %w", err)
	}
	return nil
}
