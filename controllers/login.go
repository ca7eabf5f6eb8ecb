package controllers

import (
	"errors"
	"net/http"

	"campusshield/logger"
	"campusshield/middleware"
	"campusshield/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	auth         *services.AuthService
	cookieSecure bool
}

func NewAuthController(auth *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{auth: auth, cookieSecure: cookieSecure}
}

func (ctl *AuthController) setTokenCookie(c *gin.Context, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if ctl.cookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   ctl.cookieSecure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// Login handles POST /api/admin/login.
func (ctl *AuthController) Login(c *gin.Context) {
	type LoginInput struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	token, claims, err := ctl.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logger.Log.Error("login failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	ctl.setTokenCookie(c, token, int(ctl.auth.TTL().Seconds()))
	logger.Log.Info("admin logged in", zap.String("email", claims.Email))

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     token,
		"email":     claims.Email,
		"expiresAt": claims.ExpiresAt.Time,
	})
}

// Me handles GET /api/admin/me.
func (ctl *AuthController) Me(c *gin.Context) {
	claims := middlewares.CurrentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": claims.Email, "expiresAt": claims.ExpiresAt.Time})
}
