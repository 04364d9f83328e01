package jwt

import (
	"time"

	customErrors "github.com/shopline-platform/auth-service/internal/auth/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type hmacIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   string
}

// NewHMACIssuer builds a TokenIssuer signing with HS256. The secret is
// injected here and nowhere else, so a second issuer with a different key can
// coexist with this one.
func NewHMACIssuer(secret string, accessTTL, refreshTTL time.Duration, issuer, audience string) *hmacIssuer {
	return &hmacIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		audience:   audience,
	}
}

func (h *hmacIssuer) IssueAccessToken(userID uuid.UUID, email string) (string, time.Time, error) {
	return h.issue(userID, email, KindAccess, h.accessTTL)
}

func (h *hmacIssuer) IssueRefreshToken(userID uuid.UUID, email string) (string, time.Time, error) {
	return h.issue(userID, email, KindRefresh, h.refreshTTL)
}

func (h *hmacIssuer) issue(userID uuid.UUID, email, kind string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    h.issuer,
			Audience:  jwt.ClaimStrings{h.audience},
			ID:        uuid.NewString(),
		},
		Email: email,
		Kind:  kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign "+kind+" token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (h *hmacIssuer) ParseAccessToken(raw string) (Claims, error) {
	return h.parse(raw, KindAccess)
}

func (h *hmacIssuer) ParseRefreshToken(raw string) (Claims, error) {
	return h.parse(raw, KindRefresh)
}

func (h *hmacIssuer) parse(raw, kind string) (Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return h.secret, nil
	})

	if err != nil || !token.Valid {
		return Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Kind != kind {
		return Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
