package controllers

import (
	"net/http"

	"campusshield/logger"
	"campusshield/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logout revokes the current session and clears the cookie.
func (ctl *AuthController) Logout(c *gin.Context) {
	if claims := middlewares.CurrentClaims(c); claims != nil {
		if err := ctl.auth.Logout(c.Request.Context(), claims); err != nil {
			logger.Log.Error("revoke session failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
	}

	ctl.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
