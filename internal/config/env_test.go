package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"OPENAI_API_KEY": "sk-test",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLMModel)
	assert.Equal(t, "5-M", cfg.RateLimit)
	assert.Equal(t, StrategySliding, cfg.RateLimitStrategy)
	assert.True(t, cfg.RateLimitFailOpen)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_MissingOpenAIKey(t *testing.T) {
	_, err := FromEnv(lookup(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestFromEnv_Anthropic(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"LLM_PROVIDER":      "Anthropic",
		"ANTHROPIC_API_KEY": "key",
	}))
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.LLMModel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"provider", map[string]string{"LLM_PROVIDER": "llama", "OPENAI_API_KEY": "k"}},
		{"strategy", map[string]string{"RATE_LIMIT_STRATEGY": "token", "OPENAI_API_KEY": "k"}},
		{"fail open", map[string]string{"RATE_LIMIT_FAIL_OPEN": "maybe", "OPENAI_API_KEY": "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookup(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"OPENAI_API_KEY":       "k",
		"LLM_MODEL":            "gpt-4o-mini",
		"RATE_LIMIT":           "10-H",
		"RATE_LIMIT_STRATEGY":  "fixed",
		"RATE_LIMIT_FAIL_OPEN": "false",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"ENVIRONMENT":          "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "10-H", cfg.RateLimit)
	assert.Equal(t, StrategyFixed, cfg.RateLimitStrategy)
	assert.False(t, cfg.RateLimitFailOpen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestParseClientFlags(t *testing.T) {
	flags, err := ParseClientFlags([]string{"-endpoint", "http://example:9000", "-prompt", "a pricing table", "-parse-failure", "silent"})
	require.NoError(t, err)

	assert.Equal(t, "http://example:9000", flags.Endpoint)
	assert.Equal(t, "a pricing table", flags.Prompt)
	assert.Equal(t, ParseFailureSilent, flags.ParseFailure)

	_, err = ParseClientFlags([]string{"-parse-failure", "loud"})
	assert.Error(t, err)
}
