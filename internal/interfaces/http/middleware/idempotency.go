package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/interfaces/http/response"
	"partner-onboarding.backend/pkg/logger"
	"partner-onboarding.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// IdempotencyHitHeader marks a replayed response
	IdempotencyHitHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// DefaultRetention is how long a response is replayed when none is configured
	DefaultRetention = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// storedResponse is what a completed request leaves behind for replay
type storedResponse struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	RequestHash string `json:"request_hash,omitempty"`
}

func hashRequestBody(c *gin.Context) (string, error) {
	if c.Request.Body == nil {
		return hashBytes(nil), nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	return hashBytes(raw), nil
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key on the same route. Keys are scoped by caller when one is
// authenticated, so public forms share one namespace per route. A stored
// response is only replayed for the same request body; a reused key with a
// different body is rejected and never reaches the handler.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.FullPath(), c.GetString(UserIDKey), key)
		ctx := c.Request.Context()

		requestHash, err := hashRequestBody(c)
		if err != nil {
			response.AbortWithError(c, domainerrors.InvalidArgument("request body could not be read"))
			return
		}

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				response.AbortWithError(c, domainerrors.AlreadyExists("request already in progress", nil))
				return
			}
			var stored storedResponse
			if json.Unmarshal([]byte(val), &stored) != nil || stored.Status == 0 {
				stored = storedResponse{Status: http.StatusOK, Body: val}
			}
			if stored.RequestHash != "" && stored.RequestHash != requestHash {
				response.AbortWithError(c, domainerrors.AlreadyExists(
					"idempotency key was already used with a different request body", domainerrors.ErrIdempotencyKeyReused))
				return
			}
			c.Header(IdempotencyHitHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", []byte(stored.Body))
			c.Abort()
			return
		case !redis.IsNil(err):
			// redis unavailable: process without idempotency
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.AbortWithError(c, domainerrors.AlreadyExists("request already in progress", nil))
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			raw, _ := json.Marshal(storedResponse{Status: status, Body: w.body.String(), RequestHash: requestHash})
			if err := redisSet(ctx, storageKey, string(raw), retention); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// Remove key so retry is possible
		_ = redisDel(ctx, storageKey)
	}
}
