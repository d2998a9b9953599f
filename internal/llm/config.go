package llm

import "codeberg.org/uigen/server/internal/config"

// maps the server configuration onto completer configuration
func ConfigFromApp(baseConfig *config.Config) *Config {
	provider := Provider(baseConfig.LLMProvider)

	return &Config{
		Provider: provider,
		APIKey:   getAPIKeyForProvider(provider, baseConfig),
		Model:    baseConfig.LLMModel,
		BaseURL:  getBaseURLForProvider(provider, baseConfig),
	}
}

// returns the appropriate API key for the given provider
func getAPIKeyForProvider(provider Provider, baseConfig *config.Config) string {
	switch provider {
	case ProviderAnthropic:
		return baseConfig.AnthropicKey
	default:
		return baseConfig.OpenAIKey
	}
}

func getBaseURLForProvider(provider Provider, baseConfig *config.Config) string {
	switch provider {
	case ProviderAnthropic:
		return baseConfig.AnthropicAPIURL
	default:
		return baseConfig.OpenAIBaseURL
	}
}
