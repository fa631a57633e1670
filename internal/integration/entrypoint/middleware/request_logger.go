package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request through slog, tagged with the request ID.
// Server errors log at error level, everything else at info.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}

		slog.Log(c.Request.Context(), level, "HTTP request",
			"request_id", requestid.Get(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"size", c.Writer.Size(),
			"latency", time.Since(start),
			"user_agent", c.Request.UserAgent(),
		)
	}
}
