package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	generatePath      = "/api/generate-ui"
	maxErrorBodyBytes = 64 * 1024
)

// manages HTTP requests to the UI generation proxy
type Client struct {
	endpoint   string
	httpClient *http.Client
	consumer   *Consumer
}

// creates a client for the proxy at endpoint (e.g. http://localhost:8080)
func New(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		// no total timeout: generation time is bounded by the caller's context
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: 60 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		consumer: NewConsumer(),
	}
}

// base URL of the proxy
func (c *Client) Endpoint() string {
	return c.endpoint
}

// sends the description, streams the reply through onChunk, and parses the result.
// too-short prompts are rejected without a request
func (c *Client) Generate(ctx context.Context, prompt string, onChunk func(string)) (*GeneratedUI, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+generatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	return c.consumer.Consume(resp.Body, onChunk)
}

// maps a non-200 response onto RateLimitError or APIError
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck

	var parsed errorResponse
	_ = json.Unmarshal(body, &parsed) //nolint:errcheck // non-JSON bodies fall back to the status

	if resp.StatusCode == http.StatusTooManyRequests {
		message := parsed.Error
		if message == "" {
			message = "Too many requests"
		}

		return &RateLimitError{
			Message:    message,
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       parsed.Error,
		Message:    parsed.Message,
	}
}

func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
