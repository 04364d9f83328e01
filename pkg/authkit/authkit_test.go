package authkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopline-platform/auth-service/internal/auth/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func accessToken(t *testing.T, ttl time.Duration, email string) string {
	t.Helper()
	iss := jwt.NewHMACIssuer(secret, ttl, time.Hour, "auth-service", "shopline")
	token, _, err := iss.IssueAccessToken(uuid.New(), email)
	require.NoError(t, err)
	return token
}

func refreshToken(t *testing.T) string {
	t.Helper()
	iss := jwt.NewHMACIssuer(secret, time.Minute, time.Hour, "auth-service", "shopline")
	token, _, err := iss.IssueRefreshToken(uuid.New(), "a@example.com")
	require.NoError(t, err)
	return token
}

func TestVerifyRoundTrip(t *testing.T) {
	token := accessToken(t, time.Minute, "alice@example.com")

	id, err := NewVerifier(secret).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", id.Email)
	require.NotEmpty(t, id.UserID)
}

func TestVerifyRejections(t *testing.T) {
	v := NewVerifier(secret)

	_, err := v.Verify("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(accessToken(t, -time.Minute, "a@example.com"))
	require.ErrorIs(t, err, ErrInvalidToken)

	// refresh tokens do not authorize API calls
	_, err = v.Verify(refreshToken(t))
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewVerifier("other-secret").Verify(accessToken(t, time.Minute, "a@example.com"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func protectedRouter(v *Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", Authenticate(v), func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": id.Email})
	})
	r.GET("/feed", OptionalAuth(v), func(c *gin.Context) {
		if id, ok := IdentityFrom(c); ok {
			c.JSON(http.StatusOK, gin.H{"email": id.Email})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": nil})
	})
	return r
}

func TestAuthenticateMiddleware(t *testing.T) {
	r := protectedRouter(NewVerifier(secret))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"expired", "Bearer " + accessToken(t, -time.Minute, "a@example.com"), http.StatusUnauthorized},
		{"valid", "Bearer " + accessToken(t, time.Minute, "a@example.com"), http.StatusOK},
	}

	var unauthorizedBody string
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, c.status, w.Code, c.name)

		// every rejection reads the same
		if c.status == http.StatusUnauthorized {
			if unauthorizedBody == "" {
				unauthorizedBody = w.Body.String()
			}
			require.Equal(t, unauthorizedBody, w.Body.String(), c.name)
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	r := protectedRouter(NewVerifier(secret))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":null}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, time.Minute, "a@example.com"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":"a@example.com"}`, w.Body.String())

	// invalid token degrades to anonymous instead of failing
	req = httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":null}`, w.Body.String())
}
