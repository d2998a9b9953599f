package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestServer(t *testing.T, chunks []string, captured *map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		// role-only delta first, as the API does
		fmt.Fprint(w, `data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"role":"assistant"}}]}`+"\n\n")
		flusher.Flush()

		for _, chunk := range chunks {
			payload, _ := json.Marshal(chunk)
			fmt.Fprintf(w, `data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":%s}}]}`+"\n\n", payload)
			flusher.Flush()
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestOpenAICompleter_StreamsChunksInOrder(t *testing.T) {
	var body map[string]any
	srv := newOpenAITestServer(t, []string{`{"html":"<div>`, `Hi</div>",`, `"react":""}`}, &body)

	completer := NewOpenAICompleter(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	assert.Equal(t, "gpt-3.5-turbo", completer.Model())

	stream, err := completer.StreamCompletion(context.Background(), NewUIRequest("a pricing table with three tiers"))
	require.NoError(t, err)
	defer stream.Close()

	var got []string
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, chunk)
	}

	assert.Equal(t, []string{`{"html":"<div>`, `Hi</div>",`, `"react":""}`}, got)

	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.Equal(t, true, body["stream"])
	assert.EqualValues(t, 1000, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 0.001)

	messages := body["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "a pricing table with three tiers", messages[1].(map[string]any)["content"])
}

func TestOpenAICompleter_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	completer := NewOpenAICompleter(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})

	_, err := completer.StreamCompletion(context.Background(), NewUIRequest("a footer with social icons"))
	assert.Error(t, err)
}
