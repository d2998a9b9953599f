package llm

import "context"

// represents different LLM providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// opens streaming chat completions against a provider
type Completer interface {
	StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error)
	Model() string
	Provider() Provider
}

// yields text fragments in arrival order; io.EOF marks a clean end
type Stream interface {
	Recv() (string, error)
	Close() error
}

// sampling parameters sent upstream
type Params struct {
	MaxTokens        int
	Temperature      float32
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
	N                int
}

// a single-turn completion: system instruction plus the user's text
type CompletionRequest struct {
	SystemPrompt string
	Prompt       string
	Params       Params
}

// holds configuration for completer initialization
type Config struct {
	Provider Provider
	APIKey   string
	Model    string // e.g., "gpt-3.5-turbo"
	BaseURL  string // optional endpoint override
}
