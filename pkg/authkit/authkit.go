// Package authkit is the verification contract the other platform services
// import to authenticate requests. Verification is a local signature check:
// it never calls the auth service and never touches a store, so logout does
// not invalidate an access token before its (short) natural expiry.
package authkit

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure. Callers are not told
// whether the token was malformed, forged or expired.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal an access token proves.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

// Verifier checks access tokens against the platform signing secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify returns the identity carried by a valid, unexpired access token.
func (v *Verifier) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || claims.Kind != "access" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
