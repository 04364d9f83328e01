package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the payload shared by access and refresh tokens. Kind keeps the
// two from being interchangeable even though they are signed with one key.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

type TokenIssuer interface {
	IssueAccessToken(userID uuid.UUID, email string) (token string, exp time.Time, err error)
	IssueRefreshToken(userID uuid.UUID, email string) (token string, exp time.Time, err error)
	ParseAccessToken(token string) (Claims, error)
	ParseRefreshToken(token string) (Claims, error)
}
