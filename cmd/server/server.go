package main

import (
	"fmt"

	"codeberg.org/uigen/server/internal/config"
	"codeberg.org/uigen/server/internal/llm"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	completer, err := llm.NewFromAppConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completer: %w", err)
	}

	rate, err := ratelimit.ParseRate(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	limiter, err := NewLimiter(cfg, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	logger.Info("rate limiter initialized",
		"strategy", limiter.Strategy,
		"backend", limiter.Backend,
		"limit", rate.Limit,
		"window", rate.Window.String(),
		"fail_open", cfg.RateLimitFailOpen,
	)

	logger.Info("completion provider initialized",
		"provider", completer.Provider(),
		"model", completer.Model(),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		config:    cfg,
		completer: completer,
		limiter:   limiter,
		router:    router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// builds the gate for the configured strategy; without REDIS_URL counters live in process memory
func NewLimiter(cfg *config.Config, rate ratelimit.Rate) (*Limiter, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, rate limits are per process and reset on restart")

		if cfg.RateLimitStrategy == config.StrategyFixed {
			return &Limiter{
				Gate:     ratelimit.NewFixedWindowMemoryGate(rate),
				Strategy: config.StrategyFixed,
				Backend:  "memory",
			}, nil
		}

		gate := ratelimit.NewMemoryGate(rate)

		return &Limiter{
			Gate:     gate,
			Strategy: config.StrategySliding,
			Backend:  "memory",
			closer:   gate.Close,
		}, nil
	}

	redisGate, err := ratelimit.NewRedisGateFromURL(cfg.RedisURL, rate)
	if err != nil {
		return nil, err
	}

	if cfg.RateLimitStrategy == config.StrategyFixed {
		gate, err := ratelimit.NewFixedWindowRedisGate(redisGate.Client(), rate)
		if err != nil {
			redisGate.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
			return nil, err
		}

		return &Limiter{
			Gate:     gate,
			Strategy: config.StrategyFixed,
			Backend:  "redis",
			closer:   redisGate.Close,
		}, nil
	}

	return &Limiter{
		Gate:     redisGate,
		Strategy: config.StrategySliding,
		Backend:  "redis",
		closer:   redisGate.Close,
	}, nil
}
