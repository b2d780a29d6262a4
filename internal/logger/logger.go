// Package logger builds the zap logger and its gin request middleware.
package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"property-storefront/internal/config"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const contextKey = "logger"

// New builds a logger for cfg: JSON in production, colored console otherwise.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var logConfig zap.Config
	if cfg.Environment == "production" {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// Default to info level if invalid
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	logConfig.Level.SetLevel(level)

	return logConfig.Build()
}

// Middleware tags each request with an id, stores a request-scoped logger on
// the gin context and logs the outcome.
func Middleware(log *zap.Logger, logRequests bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		reqLog := log.With(zap.String("request_id", requestID))
		c.Set(contextKey, reqLog)

		c.Next()

		if !logRequests {
			return
		}
		fields := []zapcore.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			reqLog.Error("HTTP request failed", fields...)
			return
		}
		reqLog.Info("HTTP request completed", fields...)
	}
}

// FromContext returns the request-scoped logger, or fallback when the
// middleware did not run.
func FromContext(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(contextKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}
