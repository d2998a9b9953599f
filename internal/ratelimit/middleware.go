package ratelimit

import (
	"strconv"
	"time"

	apierrors "codeberg.org/uigen/server/internal/errors"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/metrics"
	"github.com/gin-gonic/gin"
)

// controls how the middleware derives keys and reacts to store failures
type MiddlewareOptions struct {
	// admit requests when the gate errors (store unreachable)
	FailOpen bool

	// derives the rate limit key; defaults to ClientKey
	KeyFunc func(c *gin.Context) string
}

// returns a Gin middleware that rejects requests over the rate with 429
func Middleware(gate Gate, opts MiddlewareOptions) gin.HandlerFunc {
	keyFunc := opts.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string {
			return ClientKey(c.Request)
		}
	}

	return func(c *gin.Context) {
		key := keyFunc(c)

		decision, err := gate.Admit(c.Request.Context(), key)
		if err != nil {
			metrics.IncRateLimitDecision(resultError)

			if opts.FailOpen {
				logger.ErrorErr(err, "rate limiter unavailable, admitting request", "key", key)
				c.Next()
				return
			}

			logger.ErrorErr(err, "rate limiter unavailable, rejecting request", "key", key)
			apierrors.Unavailable(c, "rate limiter unavailable")
			return
		}

		setHeaders(c, decision)

		if !decision.Success {
			metrics.IncRateLimitDecision(resultRejected)
			logger.Warn("rate limit exceeded", "key", key, "reset_at", decision.ResetAt)

			apierrors.TooManyRequests(c, time.Until(decision.ResetAt))
			return
		}

		metrics.IncRateLimitDecision(resultAdmitted)
		logger.Debug("request admitted", "key", key, "remaining", decision.Remaining)
		c.Next()
	}
}

func setHeaders(c *gin.Context, d Decision) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

	if !d.ResetAt.IsZero() {
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	}
}
