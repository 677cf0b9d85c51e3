package insights

import (
	"context"
	"fmt"
	"strings"

	"cat-resume-api/internal/llm"
)

// ListSize is the number of highlights and keywords produced per resume.
const ListSize = 5

const defaultMaxTokens = 1000

// Analyzer turns resume text into summary, highlights, keywords and a fit score.
// Every method returns a usable value; the error is only for logging.
type Analyzer struct {
	llm       llm.Client
	profile   Profile
	maxTokens int64
}

// NewAnalyzer constructs an Analyzer. A nil client behaves like an unconfigured provider.
func NewAnalyzer(client llm.Client, profile Profile, maxTokens int64) *Analyzer {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Analyzer{llm: client, profile: profile, maxTokens: maxTokens}
}

// Profile returns the job profile the analyzer evaluates against.
func (a *Analyzer) Profile() Profile { return a.profile }

// Summarize returns a free-text summary, or the profile's summary fallback.
func (a *Analyzer) Summarize(ctx context.Context, resumeText string) (string, error) {
	out, err := a.complete(ctx, summaryPrompt, resumeText, false)
	if err != nil {
		return a.profile.SummaryFallback(), fmt.Errorf("summarize: %w", err)
	}
	return out, nil
}

// Highlights returns exactly ListSize highlights.
func (a *Analyzer) Highlights(ctx context.Context, resumeText string) ([]string, error) {
	out, err := a.complete(ctx, highlightsPrompt, resumeText, false)
	if err != nil {
		return a.profile.DefaultHighlights(), fmt.Errorf("highlights: %w", err)
	}
	return ExtractList(out, ListSize, a.profile.HighlightPlaceholder()), nil
}

// Keywords returns exactly ListSize keywords relevant to the job description.
func (a *Analyzer) Keywords(ctx context.Context, resumeText string) ([]string, error) {
	out, err := a.complete(ctx, keywordsPrompt, resumeText, false)
	if err != nil {
		return a.profile.DefaultKeywords(), fmt.Errorf("keywords: %w", err)
	}
	return ExtractList(out, ListSize, a.profile.HighlightPlaceholder()), nil
}

// Score rates the resume against the job description. It makes a single attempt.
func (a *Analyzer) Score(ctx context.Context, resumeText string) (ScoreResult, error) {
	out, err := a.complete(ctx, scorePrompt, resumeText, true)
	if err != nil {
		return DefaultScore, fmt.Errorf("score: %w", err)
	}
	result, err := ParseScore(out)
	if err != nil {
		return DefaultScore, fmt.Errorf("score: %w", err)
	}
	return result, nil
}

func (a *Analyzer) complete(ctx context.Context, template, resumeText string, jsonOut bool) (string, error) {
	out, err := a.llm.Complete(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    renderPrompt(template, resumeText, a.profile.JobDescription()),
		MaxTokens: a.maxTokens,
		JSON:      jsonOut,
	})
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", llm.ErrEmptyCompletion
	}
	return out, nil
}
