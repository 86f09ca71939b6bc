package middleware

import (
	"strconv"
	"time"

	"ceylonmart-be/internal/logger"
	"ceylonmart-be/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID injects a request id into the context so every log line of a
// request can be correlated. An inbound X-Request-ID is preserved.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		ctx := logger.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

// RequestLogging logs every HTTP request in structured form and records the
// latency histogram.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		metrics.HTTPDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).
			Observe(duration.Seconds())

		logger.FromCtx(c.Request.Context()).Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("remote_ip", c.ClientIP()),
		)
	}
}
