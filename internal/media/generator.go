package media

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"cat-resume-api/internal/shared/storage/object"
	"cat-resume-api/internal/shared/telemetry"
)

const (
	imageErrorPrefix = "Error generating cat image: "
	audioErrorPrefix = "Error generating cat audio: "
	audioKeyPrefix   = "audio/"
)

// Predictor runs a hosted generation model and returns its raw output.
type Predictor interface {
	Predict(ctx context.Context, model string, input map[string]any) (MediaOutput, error)
}

// Synthesizer turns narration text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Models names the hosted models used for each kind of media.
type Models struct {
	Image        string
	ImageToVideo string
	TextToVideo  string
}

// Generator produces the cat-themed media for a resume.
type Generator struct {
	Predictor Predictor
	Speech    Synthesizer
	Store     object.ObjectStore
	BaseURL   string
	Models    Models

	// Seed returns the image seed; nil uses a random seed per call.
	Seed func() int64
	// NewID names generated audio files; nil uses uuid.NewString.
	NewID func() string
}

// CatImage generates a cat presenting the keywords. On failure the returned string
// is an error sentinel suitable for the response body.
func (g *Generator) CatImage(ctx context.Context, keywords []string) (string, error) {
	url, err := g.image(ctx, ImagePrompt(keywords))
	if err != nil {
		return imageErrorPrefix + err.Error(), err
	}
	return url, nil
}

// CatVideo runs the video fallback chain: image-to-video, text-to-video, then a static image.
func (g *Generator) CatVideo(ctx context.Context, highlights []string) ChainResult {
	highlights = CoerceHighlights(highlights)
	return RunChain(ctx, []Attempt{
		{Stage: StagePrimary, Run: func(ctx context.Context) (MediaOutput, error) {
			frame, err := g.image(ctx, ReferenceFramePrompt)
			if err != nil {
				return nil, fmt.Errorf("reference frame: %w", err)
			}
			return g.predict(ctx, g.Models.ImageToVideo, map[string]any{
				"input_image":       frame,
				"prompt":            VideoOverlayPrompt(highlights),
				"video_length":      "25_frames_with_svd_xt",
				"frames_per_second": 6,
			})
		}},
		{Stage: StageSecondaryVideo, Run: func(ctx context.Context) (MediaOutput, error) {
			return g.predict(ctx, g.Models.TextToVideo, map[string]any{
				"prompt":     TextVideoPrompt(highlights),
				"num_frames": 24,
				"fps":        8,
			})
		}},
		{Stage: StageStaticFallback, Run: func(ctx context.Context) (MediaOutput, error) {
			return g.predict(ctx, g.Models.Image, g.imageInput(ImagePrompt(highlights)))
		}},
	})
}

// CatAudio narrates the highlights with a tone chosen from score, stores the MP3
// and returns its public URL. On failure the returned string is an error sentinel.
func (g *Generator) CatAudio(ctx context.Context, summary string, highlights []string, score int) (string, error) {
	url, err := g.audio(ctx, summary, highlights, score)
	if err != nil {
		return audioErrorPrefix + err.Error(), err
	}
	return url, nil
}

func (g *Generator) audio(ctx context.Context, summary string, highlights []string, score int) (string, error) {
	if g.Speech == nil || g.Store == nil {
		return "", fmt.Errorf("speech synthesis not configured")
	}
	if len(highlights) == 0 {
		highlights = HighlightsFromSummary(summary)
	}
	tone := ToneForScore(score)
	script, err := CatScript(highlights, tone)
	if err != nil {
		return "", err
	}

	audio, err := g.Speech.Synthesize(ctx, script)
	if err != nil {
		return "", err
	}

	key := audioKeyPrefix + "cat_audio_" + g.newID() + ".mp3"
	if _, err := g.Store.SaveWithKey(ctx, key, "audio/mpeg", bytes.NewReader(audio)); err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}

	telemetry.Info("media.audio.stored", map[string]any{
		"key":        key,
		"tone":       string(tone),
		"size_bytes": len(audio),
	})
	return strings.TrimRight(g.BaseURL, "/") + "/" + key, nil
}

func (g *Generator) image(ctx context.Context, prompt string) (string, error) {
	out, err := g.predict(ctx, g.Models.Image, g.imageInput(prompt))
	if err != nil {
		return "", err
	}
	return NormalizeURL(out)
}

func (g *Generator) imageInput(prompt string) map[string]any {
	return ImageInput(prompt, g.seed())
}

// ImageInput builds the SDXL prediction input for prompt.
func ImageInput(prompt string, seed int64) map[string]any {
	return map[string]any{
		"prompt":              prompt,
		"negative_prompt":     NegativePrompt,
		"width":               768,
		"height":              768,
		"num_outputs":         1,
		"num_inference_steps": 40,
		"seed":                seed,
	}
}

func (g *Generator) predict(ctx context.Context, model string, input map[string]any) (MediaOutput, error) {
	if g.Predictor == nil {
		return nil, fmt.Errorf("media generation not configured")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model not configured")
	}
	return g.Predictor.Predict(ctx, model, input)
}

func (g *Generator) seed() int64 {
	if g.Seed != nil {
		return g.Seed()
	}
	return rand.Int64N(1_000_000)
}

func (g *Generator) newID() string {
	if g.NewID != nil {
		return g.NewID()
	}
	return uuid.NewString()
}
