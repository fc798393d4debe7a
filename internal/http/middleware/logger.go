package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "logisticshub/internal/config"
)

// Logger writes one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := intconfig.GetLogger().WithFields(logrus.Fields{
			"module":     "HTTP",
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"ip":         c.ClientIP(),
		})
		if s, ok := CurrentSession(c); ok {
			entry = entry.WithField("user", s.Username)
		}
		switch {
		case status >= 500:
			msg := c.Errors.String()
			if msg == "" {
				msg = "request failed"
			}
			entry.Error(msg)
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
