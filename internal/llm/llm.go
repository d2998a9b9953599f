package llm

import (
	"fmt"

	"codeberg.org/uigen/server/internal/config"
)

// creates a completer from the server configuration
func NewFromAppConfig(baseConfig *config.Config) (Completer, error) {
	if baseConfig == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return New(ConfigFromApp(baseConfig))
}

// creates a completer with explicit configuration
func New(config *Config) (Completer, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %s", config.Provider)
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAICompleter(OpenAIConfig{
			APIKey:  config.APIKey,
			Model:   config.Model,
			BaseURL: config.BaseURL,
		}), nil
	case ProviderAnthropic:
		return NewAnthropicCompleter(AnthropicConfig{
			APIKey: config.APIKey,
			Model:  config.Model,
			APIURL: config.BaseURL,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
