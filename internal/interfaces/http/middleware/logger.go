package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"partner-onboarding.backend/pkg/logger"
)

// LoggerMiddleware writes one structured line per request once the chain has
// run, so the caller uid set by AuthMiddleware is included. The raw query is
// never logged.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		if uid := c.GetString(UserIDKey); uid != "" {
			if _, ok := ctx.Value(logger.CallerUIDKey).(string); !ok {
				ctx = context.WithValue(ctx, logger.CallerUIDKey, uid)
			}
		}

		fields := []zap.Field{zap.String("route", c.FullPath())}
		if c.Writer.Header().Get(IdempotencyHitHeader) == "true" {
			fields = append(fields, zap.Bool("idempotent_replay", true))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		logger.LogRequest(ctx, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP(), fields...)
	}
}
