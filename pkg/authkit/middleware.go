package authkit

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "authkit.identity"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Authenticate rejects any request without a valid bearer access token. The
// 401 body is the same for a missing header, a malformed one and a bad or
// expired token.
func Authenticate(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		id, err := v.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid bearer token is present and
// proceeds either way. For endpoints that personalize but work anonymously.
func OptionalAuth(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if id, err := v.Verify(token); err == nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the identity set by Authenticate or OptionalAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := val.(Identity)
	return id, ok
}
