package middlewares

import (
	"time"

	"campusshield/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const anonymousKey = "anonymous_route"

// Anonymous marks reporter-facing routes. Their request log lines carry no
// client address.
func Anonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(anonymousKey, true)
		c.Next()
	}
}

// RequestLogger logs one line per request. The route template is logged in
// place of the raw path so ticket codes never reach the log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if !c.GetBool(anonymousKey) {
			fields = append(fields, zap.String("client_ip", c.ClientIP()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Log.Error("request", fields...)
		case status >= 400:
			logger.Log.Warn("request", fields...)
		default:
			logger.Log.Info("request", fields...)
		}
	}
}
