package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/uigen/server/api/rest/health"
	"codeberg.org/uigen/server/internal/config"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/metrics"
	"github.com/getsentry/sentry-go"
)

// @title UI Generator API
// @version 1.0
// @description Rate-limited proxy that streams AI-generated UI code (HTML with Tailwind and a React component)

// @contact.name API Support
// @contact.url https://codeberg.org/uigen/server

func main() {
	slog.SetDefault(logger.Default())
	logger.Info("starting uigen server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "uigen@" + health.Version,
			BeforeSend:  beforeSend,
		}); err != nil {
			logger.ErrorErr(err, "failed to initialize sentry")
		} else {
			logger.Info("sentry initialized", "environment", cfg.Environment)
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	// create server with all dependencies
	srv, err := NewServer(cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	// streaming responses outlive any fixed write deadline
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	metricsCtx, metricsCancel := context.WithCancel(context.Background())

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := metrics.StartMetricsServer(metricsCtx, cfg.MetricsAddr); err != nil {
				logger.ErrorErr(err, "metrics server failed")
			}
		}()
	}

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	metricsCancel()

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close the limiter store after in-flight requests are done
	srv.limiter.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown

	logger.Info("server stopped")
}

// drops aborted streams, which are already reported by the handler, and
// redacts credentials from request headers
func beforeSend(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil {
		for _, e := range []any{hint.RecoveredException, hint.OriginalException} {
			if err, ok := e.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				return nil
			}
		}
	}

	if event.Request != nil {
		event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
	}

	return event
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))

	for k, v := range headers {
		switch k {
		case "Authorization", "Cookie", "X-Api-Key", "authorization", "cookie", "x-api-key":
			filtered[k] = "[REDACTED]"
		default:
			filtered[k] = v
		}
	}

	return filtered
}
