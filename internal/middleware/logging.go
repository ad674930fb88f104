package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request twice: once on arrival and once on
// completion, with the completion level keyed to the response status.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"remote_ip": c.ClientIP(),
		}
		if reqID := c.Writer.Header().Get(RequestIDHeader); reqID != "" {
			fields["request_id"] = reqID
		}

		logger.WithFields(fields).WithField("user_agent", c.Request.UserAgent()).Info("Incoming request")

		c.Next()

		status := c.Writer.Status()
		completed := logger.WithFields(fields).WithFields(logrus.Fields{
			"status_code": status,
			"latency_ms":  time.Since(start).Milliseconds(),
		})

		switch {
		case len(c.Errors) > 0:
			completed.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case status >= 500:
			completed.Error("Request completed with server error")
		case status >= 400:
			completed.Warn("Request completed with client error")
		default:
			completed.Info("Request completed successfully")
		}
	}
}
