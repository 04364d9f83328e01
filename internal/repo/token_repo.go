package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRepo maintains each user's set of currently-valid refresh
// tokens. All methods take the SHA-256 digest of the token, never the raw JWT.
type RefreshTokenRepo interface {
	Add(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error

	// Rotate atomically removes oldHash and inserts newHash for userID. It
	// fails with ErrInvalidToken when oldHash is not in the set; under
	// concurrent rotation of the same token exactly one caller succeeds.
	Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error

	// Remove deletes tokenHash from the set. Removing an absent token is not
	// an error.
	Remove(ctx context.Context, userID uuid.UUID, tokenHash string) error
}

// LoginThrottle counts consecutive failed logins per key and blocks further
// attempts once the limit is hit, until the window expires or a success
// resets the counter.
type LoginThrottle interface {
	Check(ctx context.Context, key string) error
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
