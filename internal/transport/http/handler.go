package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopline-platform/auth-service/internal/auth/dto"
	authErrors "github.com/shopline-platform/auth-service/internal/auth/errors"
	"github.com/shopline-platform/auth-service/internal/auth/model"
	"github.com/shopline-platform/auth-service/internal/auth/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc service.AuthService
	log *zap.Logger
}

func NewHandler(svc service.AuthService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	auth := r.Group("/api/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)
	auth.POST("/logout", h.logout)
	auth.GET("/verify", h.verify)
}

// authPayload is the success envelope for register and login.
func authPayload(pair model.TokenPair) gin.H {
	return gin.H{
		"user": gin.H{
			"id":    pair.UserID.String(),
			"email": pair.Email,
		},
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
	}
}

func emailDigest(email string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(email)))
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.log.Info("/register", zap.String("user", emailDigest(body.Email)))

	pair, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": authPayload(pair)})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.log.Info("/login", zap.String("user", emailDigest(body.Email)))

	pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": authPayload(pair)})
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
	}})
}

func (h *Handler) logout(c *gin.Context) {
	var body dto.LogoutDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.log.Info("/logout")

	if err := h.svc.Logout(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (h *Handler) verify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
		return
	}

	id, err := h.svc.Verify(c.Request.Context(), dto.VerifyDTO{AccessToken: parts[1]})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"userId": id.UserID.String(),
		"email":  id.Email,
	}})
}

func RegisterHealth(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"service":   "auth-service",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// handleError maps the error taxonomy to statuses. Credential and token
// failures deliberately answer with fixed messages: which sub-check failed
// stays server-side.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
	case authErrors.IsTooManyAttempts(err):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "too many attempts"})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "user already exists"})
	case authErrors.IsPermissionDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
	default:
		h.log.Error("internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
