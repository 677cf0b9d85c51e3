package llm

import (
	"context"
	"errors"
)

// Client abstracts text-completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single system/user prompt exchange.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int64
	// JSON asks providers that support it to constrain output to a JSON object.
	JSON bool
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("llm response empty content")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotImplemented
}
