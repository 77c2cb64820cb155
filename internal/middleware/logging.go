package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/otel/trace"
)

// SlowRequestThreshold is the latency above which a request is logged as a
// warning.
const SlowRequestThreshold = 200 * time.Millisecond

func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	})
}

// TraceAttributes copies the active span ids into the request log line.
func TraceAttributes(c *gin.Context) {
	sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
	if sc.IsValid() {
		sloggin.AddCustomAttributes(c, slog.String("trace-id", sc.TraceID().String()))
		sloggin.AddCustomAttributes(c, slog.String("span-id", sc.SpanID().String()))
	}
	c.Next()
}

func SlowRequests(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if latency := time.Since(start); latency > SlowRequestThreshold {
			logger.Warn("slow request",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", c.Writer.Status(),
				"latency", latency,
			)
		}
	}
}
