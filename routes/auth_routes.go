package routes

import (
	"time"

	"campusshield/controllers"
	"campusshield/middleware"

	"github.com/gin-gonic/gin"
)

func SetupComplaintRoutes(api *gin.RouterGroup, h Handlers, perMinute int) {
	limit := middlewares.RateLimiter(perMinute, time.Minute)

	public := api.Group("", middlewares.Anonymous())
	public.GET("/categories", controllers.Categories)
	public.POST("/complaints", limit, h.Complaints.Submit)
	public.GET("/complaints/:ticketId", limit, h.Complaints.Track)
}

func SetupAuthRoutes(api *gin.RouterGroup, h Handlers) {
	// 5 attempts per minute per IP
	api.POST("/admin/login", middlewares.RateLimiter(5, time.Minute), h.Auth.Login)
}

func SetupAdminRoutes(api *gin.RouterGroup, h Handlers) {
	admin := api.Group("/admin", middlewares.AuthMiddleware(h.Tokens))
	admin.POST("/logout", h.Auth.Logout)
	admin.GET("/me", h.Auth.Me)
	if h.Passwords != nil {
		admin.PUT("/password", h.Passwords.ChangePassword)
	}

	admin.GET("/complaints", h.Dashboard.List)
	admin.GET("/complaints/export", h.Dashboard.Export)
	admin.GET("/cases/:ticketId", h.Dashboard.GetCase)
	admin.PUT("/cases/:ticketId", h.Dashboard.UpdateCase)
}
