package routes

import (
	"net/url"
	"time"

	"campusshield/config"
	"campusshield/controllers"
	"campusshield/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Complaints *controllers.ComplaintController
	Dashboard  *controllers.DashboardController
	Auth       *controllers.AuthController
	Passwords  *controllers.PasswordController // nil unless AUTH_PROVIDER=local
	Tokens     middlewares.TokenParser
	DB         controllers.Pinger
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, h Handlers) {
	middlewares.RegisterMetrics()

	r.Use(
		middlewares.RequestLogger(),
		middlewares.MetricsMiddleware(),
		middlewares.SecurityHeaders(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/healthz", controllers.Healthz(h.DB))
	r.GET("/metrics", middlewares.PrometheusHandler())

	if cfg.Storage.Type == "local" {
		r.Static(staticPath(cfg.Storage.PublicURL), cfg.Storage.LocalPath)
	}

	api := r.Group("/api")
	SetupComplaintRoutes(api, h, cfg.RateLimit.PerMinute)
	SetupAuthRoutes(api, h)
	SetupAdminRoutes(api, h)
}

func staticPath(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" {
		return "/uploads"
	}
	return u.Path
}
