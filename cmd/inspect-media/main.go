package main

// Run one Replicate prediction and show how its output normalizes:
//   go run ./cmd/inspect-media -keywords "Go,Kubernetes,Postgres"
//   go run ./cmd/inspect-media -model owner/name:version -input '{"prompt":"a cat"}'

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"cat-resume-api/internal/media"
	"cat-resume-api/internal/replicate"
	"cat-resume-api/internal/shared/config"
)

func main() {
	cfg := config.Load()

	model := flag.String("model", cfg.ReplicateImageModel, "Replicate model (owner/name or owner/name:version)")
	keywords := flag.String("keywords", "Professional Experience,Technical Skills,Education", "Comma-separated keywords for the cat image prompt")
	rawInput := flag.String("input", "", "Raw JSON prediction input; overrides -keywords")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall deadline")
	flag.Parse()

	client, err := replicate.New(cfg.ReplicateAPIToken, cfg.HTTPTimeout, cfg.ReplicatePollInterval)
	if err != nil {
		exitErr(err.Error())
	}

	input, err := buildInput(*rawInput, *keywords)
	if err != nil {
		exitErr(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	out, err := client.Predict(ctx, *model, input)
	if err != nil {
		exitErr(fmt.Sprintf("predict: %v", err))
	}
	fmt.Printf("model:    %s\n", *model)
	fmt.Printf("elapsed:  %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("variant:  %s\n", describe(out))

	url, err := media.NormalizeURL(out)
	if err != nil {
		fmt.Printf("url:      <%v>\n", err)
		os.Exit(2)
	}
	fmt.Printf("url:      %s\n", url)
}

func buildInput(raw, keywords string) (map[string]any, error) {
	if strings.TrimSpace(raw) != "" {
		var input map[string]any
		if err := json.Unmarshal([]byte(raw), &input); err != nil {
			return nil, fmt.Errorf("parse -input: %w", err)
		}
		return input, nil
	}
	var points []string
	for _, k := range strings.Split(keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			points = append(points, k)
		}
	}
	return media.ImageInput(media.ImagePrompt(points), time.Now().UnixNano()%1_000_000), nil
}

func describe(out media.MediaOutput) string {
	switch v := out.(type) {
	case media.Text:
		return "text"
	case media.Sequence:
		return fmt.Sprintf("sequence (%d items)", len(v))
	case media.Opaque:
		return "opaque"
	default:
		return fmt.Sprintf("unknown %T", out)
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
