package client

import (
	"errors"
	"fmt"
	"time"
)

// parsed model output: markup plus a React component, both untrusted text
type GeneratedUI struct {
	HTML  string `json:"html"`
	React string `json:"react"`
}

var (
	ErrRateLimited    = errors.New("rate limited")
	ErrPromptTooShort = errors.New("Description must be at least 10 characters.") //nolint:staticcheck // shown to users verbatim
	ErrMissingFields  = errors.New("response has neither html nor react")
)

// returned for a 429 from the proxy
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// any other non-200 from the proxy
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Code != "" {
		return e.Code
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// the stream broke before completion; Partial holds what arrived
type StreamError struct {
	Partial string
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream interrupted after %d bytes: %v", len(e.Partial), e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// the completed stream was not a JSON object with html/react strings
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse generated UI: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// wire shape of the proxy's JSON errors
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
