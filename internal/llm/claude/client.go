package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"cat-resume-api/internal/llm"
	"cat-resume-api/internal/shared/telemetry"
)

const defaultMaxTokens = 1000

// Client implements llm.Client using the Anthropic Messages API.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewClient constructs a Claude client. Extra request options are appended after the API key.
func NewClient(apiKey, model string, maxTokens int64, opts ...option.RequestOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = string(anthropic.ModelClaude3_7SonnetLatest)
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete sends one user message, with an optional system prompt, and returns the joined text blocks.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: req.Prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	response, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var out strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}

	telemetry.Info("llm.usage", map[string]any{
		"provider":      "anthropic",
		"model":         c.model,
		"input_tokens":  response.Usage.InputTokens,
		"output_tokens": response.Usage.OutputTokens,
		"stop_reason":   string(response.StopReason),
	})

	content := strings.TrimSpace(out.String())
	if content == "" {
		return "", llm.ErrEmptyCompletion
	}
	return content, nil
}

var _ llm.Client = (*Client)(nil)
