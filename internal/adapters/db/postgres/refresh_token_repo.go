package postgres

import (
	"context"
	"time"

	customErrors "github.com/shopline-platform/auth-service/internal/auth/errors"
	"github.com/shopline-platform/auth-service/internal/auth/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepo persists each user's refresh-token set, one row per valid
// token hash.
type RefreshTokenRepo struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

func (p *RefreshTokenRepo) Add(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	rt := model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	if err := p.db.WithContext(ctx).Create(&rt).Error; err != nil {
		return customErrors.WrapInternal(err, "Add")
	}
	return nil
}

// Rotate swaps oldHash for newHash in one transaction. The conditional delete
// doubles as the membership check: of two concurrent rotations of the same
// token the row lock serializes them, the second sees zero affected rows and
// fails with ErrInvalidToken.
func (p *RefreshTokenRepo) Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND token_hash = ?", userID, oldHash).
			Delete(&model.RefreshToken{})
		if res.Error != nil {
			return customErrors.WrapInternal(res.Error, "Rotate")
		}
		if res.RowsAffected == 0 {
			return customErrors.ErrInvalidToken
		}

		rt := model.RefreshToken{
			UserID:    userID,
			TokenHash: newHash,
			ExpiresAt: expiresAt,
		}
		if err := tx.Create(&rt).Error; err != nil {
			return customErrors.WrapInternal(err, "Rotate")
		}
		return nil
	})
}

func (p *RefreshTokenRepo) Remove(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	res := p.db.WithContext(ctx).Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		Delete(&model.RefreshToken{})
	if res.Error != nil {
		return customErrors.WrapInternal(res.Error, "Remove")
	}
	return nil
}
