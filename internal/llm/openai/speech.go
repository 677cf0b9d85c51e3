package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Speaker synthesizes narration audio with the OpenAI speech endpoint.
type Speaker struct {
	apiKey     string
	model      string
	voice      string
	httpClient *http.Client
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format"`
}

// NewSpeaker constructs a TTS client. model defaults to tts-1 and voice to alloy.
func NewSpeaker(apiKey, model, voice string, timeout time.Duration) (*Speaker, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for speech")
	}
	if strings.TrimSpace(model) == "" {
		model = "tts-1"
	}
	if strings.TrimSpace(voice) == "" {
		voice = "alloy"
	}
	return &Speaker{
		apiKey:     apiKey,
		model:      model,
		voice:      voice,
		httpClient: newHTTPClient(timeout),
	}, nil
}

// Synthesize returns MP3 bytes for text.
func (s *Speaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("speech input is empty")
	}
	body, status, err := postJSON(ctx, s.httpClient, speechURL, s.apiKey, speechRequest{
		Model:          s.model,
		Voice:          s.voice,
		Input:          text,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		var parsed struct {
			Error *apiError `json:"error"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			return nil, fmt.Errorf("openai speech status %d: %s (%s)", status, parsed.Error.Message, parsed.Error.Type)
		}
		return nil, fmt.Errorf("openai speech status %d: %s", status, strings.TrimSpace(string(body)))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("openai speech returned no audio")
	}
	return body, nil
}
