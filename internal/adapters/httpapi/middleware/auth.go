package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chirp/internal/core/apperr"
	"chirp/internal/core/user"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	userIDKey    = "userID"
)

// PrincipalResolver turns a bearer token into the caller it belongs to.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (user.Principal, error)
}

// JWTAuthMiddleware توکن را از هدر Authorization می‌خواند و کاربر را در context قرار می‌دهد
func JWTAuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		p, err := resolver.ResolvePrincipal(c.Request.Context(), strings.TrimSpace(token))
		if errors.Is(err, apperr.ErrUnauthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(principalKey, p)
		c.Set(userIDKey, p.ID)
		c.Next()
	}
}

// PrincipalFrom returns the caller set by JWTAuthMiddleware.
func PrincipalFrom(c *gin.Context) (user.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return user.Principal{}, false
	}
	p, ok := v.(user.Principal)
	return p, ok
}
