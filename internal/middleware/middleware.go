package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okandemir/academix/internal/pkg/logger"
)

// RequestLogger logs each request with method, path, status and latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("requestId", c.GetString(RequestIDKey)).
			Msg("Request handled")
	}
}
