package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"partner-onboarding.backend/pkg/logger"
)

// HealthCheck reports on one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness together with dependency checks
type HealthHandler struct {
	checks map[string]HealthCheck
	now    func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, now: time.Now}
}

// Health returns 200 when every check passes and 503 otherwise
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			logger.Warn(c.Request.Context(), "Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":       overall,
		"time":         h.now().UTC().Format(time.RFC3339),
		"dependencies": deps,
	})
}
