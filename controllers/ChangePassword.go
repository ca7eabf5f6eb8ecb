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

// PasswordController is only mounted with the local auth provider.
type PasswordController struct {
	local *services.LocalAuth
}

func NewPasswordController(local *services.LocalAuth) *PasswordController {
	return &PasswordController{local: local}
}

// ChangePassword handles PUT /api/admin/password for the signed-in admin.
func (ctl *PasswordController) ChangePassword(c *gin.Context) {
	type PasswordInput struct {
		OldPassword     string `json:"oldPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	var input PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.NewPassword != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password and confirmation do not match"})
		return
	}

	email := c.GetString(middlewares.AdminEmailKey)
	err := ctl.local.ChangePassword(c.Request.Context(), email, input.OldPassword, input.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	case errors.Is(err, services.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
	default:
		logger.Log.Error("change password failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
	}
}
