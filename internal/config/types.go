package config

import "time"

// rate limiter backing strategies
const (
	StrategySliding = "sliding"
	StrategyFixed   = "fixed"
)

// client behaviour when the accumulated stream is not a GeneratedUI
const (
	ParseFailureAlert  = "alert"
	ParseFailureSilent = "silent"
)

// server configuration, loaded from the environment
type Config struct {
	Environment string
	Port        string

	LLMProvider     string
	LLMModel        string
	OpenAIKey       string
	OpenAIBaseURL   string
	AnthropicKey    string
	AnthropicAPIURL string

	RedisURL          string
	RateLimit         string // ulule formatted rate, e.g. "5-M"
	RateLimitStrategy string
	RateLimitFailOpen bool

	MetricsAddr        string
	SentryDSN          string
	CORSAllowedOrigins []string

	ShutdownTimeout time.Duration
}

// true when running with production log format and error sanitizing
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// terminal client configuration
type ClientFlags struct {
	Endpoint     string
	Prompt       string
	ParseFailure string
	PreviewPath  string
	LogFile      string
}
