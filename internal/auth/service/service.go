package service

import (
	"context"

	"github.com/shopline-platform/auth-service/internal/auth/dto"
	"github.com/shopline-platform/auth-service/internal/auth/model"
)

// AuthService is the session manager: it owns credential verification, token
// issuance and the refresh-token rotation protocol.
type AuthService interface {
	Register(ctx context.Context, dto dto.RegisterDTO) (model.TokenPair, error)

	Login(ctx context.Context, dto dto.LoginDTO) (model.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new pair. The presented
	// token is single-use: it is removed from the user's set before the new
	// pair is returned, and a second exchange of the same token fails.
	Refresh(ctx context.Context, dto dto.RefreshDTO) (model.TokenPair, error)

	// Logout removes one refresh token from the user's set. It is idempotent
	// and never reports whether the user or token existed.
	Logout(ctx context.Context, dto dto.LogoutDTO) error

	// Verify checks an access token's signature and expiry only; it never
	// consults the store.
	Verify(ctx context.Context, dto dto.VerifyDTO) (model.Identity, error)
}
