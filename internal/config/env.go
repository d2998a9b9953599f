package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultOpenAIModel    = "gpt-3.5-turbo"
	defaultAnthropicModel = "claude-3-haiku-20240307"
	defaultRateLimit      = "5-M"
	defaultPort           = "8080"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnv(os.Getenv)
}

// builds the configuration from a lookup function (os.Getenv in production)
func FromEnv(getenv func(string) string) (*Config, error) {
	environment := getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	provider := strings.ToLower(getenv("LLM_PROVIDER"))
	if provider == "" {
		provider = ProviderOpenAI
	}

	openaiKey := getenv("OPENAI_API_KEY")
	anthropicKey := getenv("ANTHROPIC_API_KEY")
	model := getenv("LLM_MODEL")

	switch provider {
	case ProviderOpenAI:
		if openaiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}

		if model == "" {
			model = defaultOpenAIModel
		}
	case ProviderAnthropic:
		if anthropicKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}

		if model == "" {
			model = defaultAnthropicModel
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %s", provider)
	}

	rateLimit := getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	strategy := strings.ToLower(getenv("RATE_LIMIT_STRATEGY"))
	if strategy == "" {
		strategy = StrategySliding
	}

	if strategy != StrategySliding && strategy != StrategyFixed {
		return nil, fmt.Errorf("unsupported RATE_LIMIT_STRATEGY: %s", strategy)
	}

	failOpen := true
	if v := getenv("RATE_LIMIT_FAIL_OPEN"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_FAIL_OPEN: %w", err)
		}
		failOpen = parsed
	}

	return &Config{
		Environment:        environment,
		Port:               port,
		LLMProvider:        provider,
		LLMModel:           model,
		OpenAIKey:          openaiKey,
		OpenAIBaseURL:      getenv("OPENAI_BASE_URL"),
		AnthropicKey:       anthropicKey,
		AnthropicAPIURL:    getenv("ANTHROPIC_API_URL"),
		RedisURL:           getenv("REDIS_URL"),
		RateLimit:          rateLimit,
		RateLimitStrategy:  strategy,
		RateLimitFailOpen:  failOpen,
		MetricsAddr:        getenv("METRICS_ADDR"),
		SentryDSN:          getenv("SENTRY_DSN"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS"), []string{"*"}),
		ShutdownTimeout:    10 * time.Second,
	}, nil
}

// splits a comma-separated list, dropping blanks
func splitList(raw string, fallback []string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	if len(out) == 0 {
		return fallback
	}

	return out
}
