package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"cat-resume-api/internal/media"
	"cat-resume-api/internal/shared/telemetry"
)

var baseURL = "https://api.replicate.com"

const (
	defaultTimeout      = 120 * time.Second
	defaultPollInterval = time.Second
	maxErrorBody        = 512
)

var (
	// ErrMissingToken is returned when no API token is configured.
	ErrMissingToken = errors.New("REPLICATE_API_TOKEN is required")
	// ErrPredictionFailed is returned when a prediction ends in failed or canceled.
	ErrPredictionFailed = errors.New("replicate prediction failed")
	// ErrNullOutput is returned when a prediction succeeds without output.
	ErrNullOutput = errors.New("replicate prediction returned no output")
)

// Client runs predictions against the Replicate HTTP API.
type Client struct {
	token        string
	httpClient   *http.Client
	pollInterval time.Duration
}

// New constructs a client. pollInterval bounds how often a pending prediction is polled.
func New(token string, timeout, pollInterval time.Duration) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Client{
		token:        token,
		httpClient:   &http.Client{Timeout: timeout},
		pollInterval: pollInterval,
	}, nil
}

// Predict starts a prediction for model and waits until it reaches a terminal state.
// model is either "owner/name:version" or "owner/name" for official models.
// Each call paces its own polling, so concurrent predictions do not slow each other.
func (c *Client) Predict(ctx context.Context, model string, input map[string]any) (media.MediaOutput, error) {
	url, payload, err := predictionRequest(model, input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(c.pollInterval), 1)
	for {
		status := gjson.GetBytes(body, "status").String()
		switch status {
		case "succeeded":
			telemetry.Info("replicate.prediction.succeeded", map[string]any{
				"model":       model,
				"id":          gjson.GetBytes(body, "id").String(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			return decodeOutput(gjson.GetBytes(body, "output"))
		case "failed", "canceled":
			detail := strings.TrimSpace(gjson.GetBytes(body, "error").String())
			if detail == "" {
				detail = status
			}
			return nil, fmt.Errorf("%w: %s", ErrPredictionFailed, detail)
		}

		next := gjson.GetBytes(body, "urls.get").String()
		if next == "" {
			return nil, fmt.Errorf("replicate prediction in status %q has no poll url", status)
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		body, err = c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}
	}
}

func predictionRequest(model string, input map[string]any) (string, map[string]any, error) {
	model = strings.TrimSpace(model)
	name, version, hasVersion := strings.Cut(model, ":")
	if hasVersion {
		if version == "" {
			return "", nil, fmt.Errorf("replicate model %q has empty version", model)
		}
		return baseURL + "/v1/predictions", map[string]any{"version": version, "input": input}, nil
	}
	owner, repo, ok := strings.Cut(name, "/")
	if !ok || owner == "" || repo == "" {
		return "", nil, fmt.Errorf("replicate model %q must be owner/name[:version]", model)
	}
	return fmt.Sprintf("%s/v1/models/%s/%s/predictions", baseURL, owner, repo), map[string]any{"input": input}, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal replicate request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "wait")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read replicate response: %w", err)
	}
	if resp.StatusCode >= 400 {
		detail := gjson.GetBytes(body, "detail").String()
		if detail == "" {
			detail = truncate(strings.TrimSpace(string(body)), maxErrorBody)
		}
		return nil, fmt.Errorf("replicate http status %d: %s", resp.StatusCode, detail)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("replicate response is not valid json")
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
