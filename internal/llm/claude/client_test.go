package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-resume-api/internal/llm"
)

func messageServer(t *testing.T, text string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		if captured != nil {
			var payload map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			*captured = payload
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "msg_1",
			"type":          "message",
			"role":          "assistant",
			"model":         "claude-3-7-sonnet-latest",
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content":       []map[string]any{{"type": "text", "text": text}},
			"usage":         map[string]any{"input_tokens": 12, "output_tokens": 7},
		})
	}))
}

func TestCompleteSendsSystemAndReturnsText(t *testing.T) {
	var captured map[string]any
	server := messageServer(t, `["a","b","c","d","e"]`, &captured)
	defer server.Close()

	client, err := NewClient("test-key", "claude-3-opus-20240229", 500, option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), llm.Request{
		System: "You extract resume highlights.",
		Prompt: "resume text",
	})
	require.NoError(t, err)
	assert.Equal(t, `["a","b","c","d","e"]`, out)

	assert.Equal(t, "claude-3-opus-20240229", captured["model"])
	assert.EqualValues(t, 500, captured["max_tokens"])
	system, ok := captured["system"].([]any)
	require.True(t, ok, "expected system blocks, got %T", captured["system"])
	require.Len(t, system, 1)
}

func TestCompleteRequestMaxTokensOverridesDefault(t *testing.T) {
	var captured map[string]any
	server := messageServer(t, "summary", &captured)
	defer server.Close()

	client, err := NewClient("test-key", "", 0, option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{Prompt: "resume", MaxTokens: 42})
	require.NoError(t, err)
	assert.EqualValues(t, 42, captured["max_tokens"])
	_, hasSystem := captured["system"]
	assert.False(t, hasSystem)
}

func TestCompleteEmptyTextIsError(t *testing.T) {
	server := messageServer(t, "   ", nil)
	defer server.Close()

	client, err := NewClient("test-key", "", 0, option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{Prompt: "resume"})
	assert.True(t, errors.Is(err, llm.ErrEmptyCompletion), "got %v", err)
}

func TestCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	client, err := NewClient("bad-key", "", 0, option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{Prompt: "resume"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic messages")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "", 0)
	assert.Error(t, err)
}
