package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	apperrors "github.com/boddle/jwtplay/pkg/errors"
	"github.com/boddle/jwtplay/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLimiter decides whether a client may make another request
type RequestLimiter interface {
	Allow(ctx context.Context, clientID string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit rejects clients over their request budget with 429.
// Limiter failures are logged and the request is let through.
func RateLimit(limiter RequestLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			logger.Warn("rate limiter error", zap.Error(err), zap.String("ip", clientIP))
			c.Next()
			return
		}

		if !allowed {
			RecordRateLimitHit()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			response.Abort(c, apperrors.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
