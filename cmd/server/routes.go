package main

import (
	"codeberg.org/uigen/server/api/rest/generate"
	"codeberg.org/uigen/server/api/rest/health"
	apierrors "codeberg.org/uigen/server/internal/errors"
	"codeberg.org/uigen/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(RequestTracking())

	if server.config.SentryDSN != "" {
		router.Use(SentryMiddleware())
	}

	router.Use(Recovery())
	router.Use(CORSMiddleware(server.config.CORSAllowedOrigins))

	router.GET("/health", health.Handler)
	router.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "route")
	})

	api := router.Group("/api")

	{
		rateLimit := ratelimit.Middleware(server.limiter.Gate, ratelimit.MiddlewareOptions{
			FailOpen: server.config.RateLimitFailOpen,
		})

		generate.RegisterRoutes(api, server.completer, rateLimit)
	}
}
