package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shopline-platform/auth-service/internal/auth/dto"
	customErrors "github.com/shopline-platform/auth-service/internal/auth/errors"
	"github.com/shopline-platform/auth-service/internal/auth/jwt"
	"github.com/shopline-platform/auth-service/internal/auth/model"
	"github.com/shopline-platform/auth-service/internal/auth/password"
	"github.com/shopline-platform/auth-service/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.RefreshTokenRepo
	throttle  repo.LoginThrottle
	issuer    jwt.TokenIssuer
	hasher    *password.Hasher
	v         *validator.Validate
}

func NewAuthService(
	userRepo repo.UserRepo,
	tokenRepo repo.RefreshTokenRepo,
	throttle repo.LoginThrottle,
	issuer jwt.TokenIssuer,
	hasher *password.Hasher,
	v *validator.Validate,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		throttle:  throttle,
		issuer:    issuer,
		hasher:    hasher,
		v:         v,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashToken is the digest under which refresh tokens live in the store.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (a *authService) Register(ctx context.Context, d dto.RegisterDTO) (model.TokenPair, error) {
	// normalize before validation so padded-but-valid input is accepted
	d.Email = normalizeEmail(d.Email)
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(d.Password)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        d.Email,
		PasswordHash: passwordHash,
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.TokenPair{}, customErrors.ErrAlreadyExists
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issuePair(ctx, id, d.Email, "Register")
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, error) {
	d.Email = normalizeEmail(d.Email)
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	if err := a.throttle.Check(ctx, d.Email); err != nil {
		return model.TokenPair{}, err
	}

	// Unknown email and wrong password both answer ErrInvalidCredentials so a
	// caller cannot probe which accounts exist.
	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if errors.Is(err, customErrors.ErrNotFound) {
		_ = a.throttle.Fail(ctx, d.Email)
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(d.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		_ = a.throttle.Fail(ctx, d.Email)
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	_ = a.throttle.Reset(ctx, d.Email)

	// Prior sessions stay valid: login appends to the refresh-token set.
	return a.issuePair(ctx, user.ID, user.Email, "Login")
}

func (a *authService) Refresh(ctx context.Context, d dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.issuer.ParseRefreshToken(d.RefreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	accessToken, atExp, err := a.issuer.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}
	refreshToken, rtExp, err := a.issuer.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	// Single-use rotation: the swap is one conditional write, so of two
	// racing refresh calls only the one that removes the old token wins. The
	// loser's freshly signed pair is never persisted.
	err = a.tokenRepo.Rotate(ctx, user.ID, hashToken(d.RefreshToken), hashToken(refreshToken), rtExp)
	if errors.Is(err, customErrors.ErrInvalidToken) {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	return newPair(accessToken, refreshToken, atExp, rtExp, user.ID, user.Email), nil
}

func (a *authService) Logout(ctx context.Context, d dto.LogoutDTO) error {
	if err := a.v.Struct(d); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	// Unknown user, malformed id, already-removed token: all succeed. Logout
	// discloses nothing.
	uid, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil
	}

	if err := a.tokenRepo.Remove(ctx, uid, hashToken(d.RefreshToken)); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) Verify(ctx context.Context, d dto.VerifyDTO) (model.Identity, error) {
	if err := a.v.Struct(d); err != nil {
		return model.Identity{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.issuer.ParseAccessToken(d.AccessToken)
	if err != nil {
		return model.Identity{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Identity{}, customErrors.ErrInvalidToken
	}

	return model.Identity{UserID: uid, Email: claims.Email}, nil
}

func (a *authService) issuePair(ctx context.Context, userID uuid.UUID, email, op string) (model.TokenPair, error) {
	accessToken, atExp, err := a.issuer.IssueAccessToken(userID, email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, op)
	}
	refreshToken, rtExp, err := a.issuer.IssueRefreshToken(userID, email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, op)
	}

	if err := a.tokenRepo.Add(ctx, userID, hashToken(refreshToken), rtExp); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, op)
	}

	return newPair(accessToken, refreshToken, atExp, rtExp, userID, email), nil
}

func newPair(access, refresh string, atExp, rtExp time.Time, userID uuid.UUID, email string) model.TokenPair {
	now := time.Now()
	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       userID,
		Email:        email,
	}
}
