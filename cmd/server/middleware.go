package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	apierrors "codeberg.org/uigen/server/internal/errors"
	"codeberg.org/uigen/server/internal/logger"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sentryFlushTimeout = 2 * time.Second

// allows browser clients from the configured origins to call the API
func CORSMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}

// adds a request ID and logs each request's outcome
func RequestTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		reqLogger := logger.With("request_id", requestID)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		start := time.Now()

		// deferred so aborted streams, which leave by panic, are logged too
		defer func() {
			status := c.Writer.Status()
			args := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"client_ip", c.ClientIP(),
			}

			switch {
			case status >= http.StatusInternalServerError:
				reqLogger.Error("request failed with server error", args...)
			case status >= http.StatusBadRequest:
				reqLogger.Warn("request failed with client error", args...)
			default:
				reqLogger.Info("request completed", args...)
			}
		}()

		c.Next()
	}
}

// reports panics to Sentry, then hands them on to Recovery
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}

// recovers panics as 500s, except http.ErrAbortHandler which must reach net/http
// so a half-written stream is cut off instead of ending cleanly
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(http.ErrAbortHandler)
			}

			logger.Error("panic recovered",
				"request_id", c.GetString("request_id"),
				"path", c.Request.URL.Path,
				"error", recovered,
			)

			if !c.Writer.Written() {
				apierrors.InternalError(c, "internal server error", fmt.Errorf("panic: %v", recovered))
			}

			c.Abort()
		}()

		c.Next()
	}
}
