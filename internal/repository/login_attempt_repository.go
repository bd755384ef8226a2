package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "login_attempts:"

// LoginAttemptRepository counts failed logins per identifier in Redis.
// A nil client makes every method a no-op.
type LoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository constructs the repository. client may be nil.
func NewLoginAttemptRepository(client *redis.Client) *LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

func attemptKey(login string) string {
	return loginAttemptPrefix + strings.ToLower(strings.TrimSpace(login))
}

// Failures returns the failed attempts recorded for login.
func (r *LoginAttemptRepository) Failures(ctx context.Context, login string) (int, error) {
	if r.client == nil {
		return 0, nil
	}
	n, err := r.client.Get(ctx, attemptKey(login)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get login attempts: %w", err)
	}
	return n, nil
}

// RecordFailure increments the counter. The window starts at the first failure.
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, login string, window time.Duration) (int, error) {
	if r.client == nil {
		return 0, nil
	}
	key := attemptKey(login)
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr login attempts: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return int(n), fmt.Errorf("redis expire login attempts: %w", err)
		}
	}
	return int(n), nil
}

// Reset clears the counter after a successful login.
func (r *LoginAttemptRepository) Reset(ctx context.Context, login string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, attemptKey(login)).Err(); err != nil {
		return fmt.Errorf("redis del login attempts: %w", err)
	}
	return nil
}
