package llm

import (
	"testing"

	"codeberg.org/uigen/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromAppConfig_SelectsProvider(t *testing.T) {
	completer, err := NewFromAppConfig(&config.Config{
		LLMProvider: config.ProviderOpenAI,
		LLMModel:    "gpt-3.5-turbo",
		OpenAIKey:   "sk-test",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, completer.Provider())
	assert.Equal(t, "gpt-3.5-turbo", completer.Model())

	completer, err = NewFromAppConfig(&config.Config{
		LLMProvider:  config.ProviderAnthropic,
		LLMModel:     "claude-3-haiku-20240307",
		AnthropicKey: "sk-ant-test",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, completer.Provider())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{Provider: ProviderOpenAI})
	assert.Error(t, err, "missing key")

	_, err = New(&Config{Provider: "mistral", APIKey: "k"})
	assert.Error(t, err)
}

func TestNewUIRequest(t *testing.T) {
	req := NewUIRequest("  a navbar with a search bar  ")

	assert.Equal(t, "  a navbar with a search bar  ", req.Prompt, "prompt is passed through unchanged")
	assert.Contains(t, req.SystemPrompt, "Tailwind CSS")
	assert.Contains(t, req.SystemPrompt, "'html' and 'react'")
	assert.Equal(t, Params{MaxTokens: 1000, Temperature: 0.7, TopP: 1, N: 1}, req.Params)
}
