package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// shared HTTP client for OpenAI API calls
// no total timeout: streams are bounded by the request context
var openaiHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
	},
}

type OpenAIConfig struct {
	APIKey  string
	Model   string // e.g., "gpt-3.5-turbo"
	BaseURL string // e.g., "https://api.openai.com/v1"
}

type OpenAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(config OpenAIConfig) *OpenAICompleter {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = openaiHTTPClient

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
	}
}

func (c *OpenAICompleter) Model() string {
	return c.model
}

func (c *OpenAICompleter) Provider() Provider {
	return ProviderOpenAI
}

// opens a chat completion stream with the system and user messages
func (c *OpenAICompleter) StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:            c.model,
		Messages:         messages,
		MaxTokens:        req.Params.MaxTokens,
		Temperature:      req.Params.Temperature,
		TopP:             req.Params.TopP,
		FrequencyPenalty: req.Params.FrequencyPenalty,
		PresencePenalty:  req.Params.PresencePenalty,
		N:                req.Params.N,
		Stream:           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open completion stream: %w", err)
	}

	return &openaiStream{stream: stream}, nil
}

type openaiStream struct {
	stream *openai.ChatCompletionStream
}

// skips role-only and empty deltas
func (s *openaiStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			return "", err
		}

		if len(resp.Choices) > 0 && resp.Choices[0].Delta.Content != "" {
			return resp.Choices[0].Delta.Content, nil
		}
	}
}

func (s *openaiStream) Close() error {
	return s.stream.Close()
}
