package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	customErrors "github.com/shopline-platform/auth-service/internal/auth/errors"
	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts consecutive failed logins per email in redis. The
// counter expires on its own, so a locked account unlocks after the window
// with no sweeper.
type LoginThrottle struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewLoginThrottle(client *redis.Client, max int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, max: int64(max), window: window}
}

// keys carry a digest of the email, not the email itself
func key(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "login_fail:" + hex.EncodeToString(sum[:])
}

func (l *LoginThrottle) Check(ctx context.Context, email string) error {
	n, err := l.client.Get(ctx, key(email)).Int64()
	switch {
	case err == redis.Nil:
		return nil
	case err != nil:
		return customErrors.WrapInternal(err, "Check")
	case n >= l.max:
		return customErrors.ErrTooManyAttempts
	default:
		return nil
	}
}

func (l *LoginThrottle) Fail(ctx context.Context, email string) error {
	k := key(email)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return customErrors.WrapInternal(err, "Fail")
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return customErrors.WrapInternal(err, "Fail")
		}
	}
	return nil
}

func (l *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, key(email)).Err(); err != nil {
		return customErrors.WrapInternal(err, "Reset")
	}
	return nil
}
