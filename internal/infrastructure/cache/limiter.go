package cache

import (
	"context"
	"fmt"

	"clinic-management-api/config"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptLimiter counts failed logins per login name in redis. The
// counter expires after the configured window, so a quiet account unblocks
// itself without any cleanup job.
type LoginAttemptLimiter struct {
	client *redis.Client
	cfg    config.LoginConfig
}

func NewLoginAttemptLimiter(client *redis.Client, cfg config.LoginConfig) *LoginAttemptLimiter {
	return &LoginAttemptLimiter{
		client: client,
		cfg:    cfg,
	}
}

func attemptsKey(login string) string {
	return fmt.Sprintf("login_attempts:%s", login)
}

func (l *LoginAttemptLimiter) TooManyAttempts(ctx context.Context, login string) (bool, error) {
	count, err := l.client.Get(ctx, attemptsKey(login)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= l.cfg.MaxAttempts, nil
}

func (l *LoginAttemptLimiter) RecordFailure(ctx context.Context, login string) error {
	key := attemptsKey(login)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	// The window starts at the first failure.
	if count == 1 {
		return l.client.Expire(ctx, key, l.cfg.AttemptsWindow).Err()
	}
	return nil
}

func (l *LoginAttemptLimiter) Reset(ctx context.Context, login string) error {
	return l.client.Del(ctx, attemptsKey(login)).Err()
}
