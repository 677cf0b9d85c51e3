package main

// Run the text stages against a local resume:
//   go run ./cmd/analyze -resume ./resume.pdf [-jd ./job.txt] [-stage score]

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cat-resume-api/internal/extract"
	"cat-resume-api/internal/insights"
	"cat-resume-api/internal/llm"
	"cat-resume-api/internal/llm/claude"
	openai "cat-resume-api/internal/llm/openai"
	"cat-resume-api/internal/shared/config"
)

type report struct {
	Summary    string                `json:"summary,omitempty"`
	Highlights []string              `json:"highlights,omitempty"`
	Keywords   []string              `json:"keywords,omitempty"`
	Score      *insights.ScoreResult `json:"score,omitempty"`
	Errors     map[string]string     `json:"errors,omitempty"`
}

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume PDF")
	jdPath := flag.String("jd", "", "Path to job description file (optional)")
	stage := flag.String("stage", "all", "Stage to run: all, summary, highlights, keywords, score")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider: anthropic, openai")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}
	if !strings.EqualFold(filepath.Ext(*resumePath), ".pdf") {
		exitErr(fmt.Sprintf("unsupported resume file type: %s", filepath.Ext(*resumePath)))
	}

	ctx := context.Background()
	resumeText, err := extract.ExtractFile(ctx, *resumePath, "application/pdf")
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	jobProfile, err := config.LoadJobProfile(cfg.JobProfilePath)
	if err != nil {
		exitErr(err.Error())
	}
	if strings.TrimSpace(*jdPath) != "" {
		jdBytes, err := os.ReadFile(*jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("read job description: %v", err))
		}
		jobProfile.JobDescription = string(jdBytes)
	}

	client, err := buildClient(cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}
	analyzer := insights.NewAnalyzer(client, insights.NewProfile(jobProfile), cfg.LLMMaxTokens)

	out := report{Errors: map[string]string{}}
	run := func(name string) bool {
		return *stage == "all" || *stage == name
	}
	record := func(name string, err error) {
		if err != nil {
			out.Errors[name] = insights.Classify(err) + ": " + err.Error()
		}
	}

	switch *stage {
	case "all", "summary", "highlights", "keywords", "score":
	default:
		exitErr(fmt.Sprintf("unsupported stage: %s", *stage))
	}
	if run("summary") {
		out.Summary, err = analyzer.Summarize(ctx, resumeText)
		record("summary", err)
	}
	if run("highlights") {
		out.Highlights, err = analyzer.Highlights(ctx, resumeText)
		record("highlights", err)
	}
	if run("keywords") {
		out.Keywords, err = analyzer.Keywords(ctx, resumeText)
		record("keywords", err)
	}
	if run("score") {
		score, err := analyzer.Score(ctx, resumeText)
		record("score", err)
		out.Score = &score
	}

	raw, err := json.Marshal(out)
	if err != nil {
		exitErr(fmt.Sprintf("encode output: %v", err))
	}
	pretty, err := prettyJSON(raw)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	_, _ = os.Stdout.Write([]byte("\n"))
}

func buildClient(cfg config.Config, provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "anthropic":
		return claude.NewClient(cfg.AnthropicAPIKey, model, cfg.LLMMaxTokens)
	case "openai":
		if strings.TrimSpace(model) == "" {
			model = "gpt-4"
		}
		return openai.NewClient(cfg.OpenAIAPIKey, model, cfg.HTTPTimeout)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
