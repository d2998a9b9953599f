package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_EndpointTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", New("http://localhost:8080/").Endpoint())
}

func TestClient_Generate(t *testing.T) {
	var received map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate-ui", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)

		for _, part := range []string{`{"html":"<div>Hi</div>",`, `"react":"export default function Hi() {}"}`} {
			fmt.Fprint(w, part)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	var streamed string
	ui, err := New(srv.URL+"/").Generate(context.Background(), "A simple card with a title", func(s string) {
		streamed += s
	})
	require.NoError(t, err)

	assert.Equal(t, "A simple card with a title", received["prompt"])
	assert.Equal(t, "<div>Hi</div>", ui.HTML)
	assert.Equal(t, `{"html":"<div>Hi</div>","react":"export default function Hi() {}"}`, streamed)
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"Too many requests"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Generate(context.Background(), "A simple card with a title", nil)

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.EqualError(t, err, "Too many requests")

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 42*time.Second, rlErr.RetryAfter)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":"upstream_error","message":"failed to start generation"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Generate(context.Background(), "A simple card with a title", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "failed to start generation", err.Error())
}

func TestClient_ShortPromptSendsNothing(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := New(srv.URL).Generate(context.Background(), "navbar", nil)

	assert.ErrorIs(t, err, ErrPromptTooShort)
	assert.Equal(t, 0, calls)
}

func TestClient_MalformedOutputIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "I cannot help with that.")
	}))
	defer srv.Close()

	_, err := New(srv.URL).Generate(context.Background(), "A simple card with a title", nil)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "I cannot help with that.", parseErr.Raw)
}
