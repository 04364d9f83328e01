package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is one member of a user's valid refresh-token set. The token
// itself is stored as a SHA-256 hex digest, never as the raw JWT.
type RefreshToken struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_user_token"`
	TokenHash string    `gorm:"not null;uniqueIndex:idx_user_token"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uuid.UUID
	Email        string
}

// Identity is the public slice of an account carried by every access token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
