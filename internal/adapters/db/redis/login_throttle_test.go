package redis

import (
	"context"
	"testing"
	"time"

	authErrors "github.com/shopline-platform/auth-service/internal/auth/errors"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newThrottle(t *testing.T, max int, window time.Duration) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLoginThrottle(client, max, window), mr
}

func TestThrottleLocksAfterMaxFailures(t *testing.T) {
	th, _ := newThrottle(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, th.Check(ctx, "a@example.com"))
		require.NoError(t, th.Fail(ctx, "a@example.com"))
	}

	require.ErrorIs(t, th.Check(ctx, "a@example.com"), authErrors.ErrTooManyAttempts)

	// other accounts are unaffected
	require.NoError(t, th.Check(ctx, "b@example.com"))
}

func TestThrottleResetClearsCounter(t *testing.T) {
	th, _ := newThrottle(t, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, th.Fail(ctx, "a@example.com"))
	require.NoError(t, th.Fail(ctx, "a@example.com"))
	require.ErrorIs(t, th.Check(ctx, "a@example.com"), authErrors.ErrTooManyAttempts)

	require.NoError(t, th.Reset(ctx, "a@example.com"))
	require.NoError(t, th.Check(ctx, "a@example.com"))
}

func TestThrottleExpiresWithWindow(t *testing.T) {
	th, mr := newThrottle(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, th.Fail(ctx, "a@example.com"))
	require.ErrorIs(t, th.Check(ctx, "a@example.com"), authErrors.ErrTooManyAttempts)

	mr.FastForward(2 * time.Minute)
	require.NoError(t, th.Check(ctx, "a@example.com"))
}
