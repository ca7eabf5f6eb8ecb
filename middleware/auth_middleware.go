package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"campusshield/logger"
	"campusshield/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TokenCookie   = "token"
	ClaimsKey     = "claims"
	AdminEmailKey = "admin_email"
	bearerPrefix  = "Bearer "
)

type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*services.Claims, error)
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	}
	if token, err := c.Cookie(TokenCookie); err == nil {
		return token
	}
	return ""
}

// AuthMiddleware accepts the session token from the Authorization header or
// the token cookie and stores its claims on the context.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		claims, err := tokens.ParseToken(c.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				logger.Log.Error("session check failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(AdminEmailKey, claims.Email)
		c.Next()
	}
}

// CurrentClaims returns the claims set by AuthMiddleware, or nil.
func CurrentClaims(c *gin.Context) *services.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}
