package media

import (
	"context"
	"errors"
	"fmt"

	"cat-resume-api/internal/shared/telemetry"
)

// ContentErrorPrefix starts the value returned when every attempt of a chain fails.
const ContentErrorPrefix = "Error generating content: "

// Stage names for the video fallback chain.
const (
	StagePrimary        = "primary"
	StageSecondaryVideo = "secondary_video"
	StageStaticFallback = "static_fallback"
)

// Attempt is one link of a fallback chain.
type Attempt struct {
	Stage string
	Run   func(ctx context.Context) (MediaOutput, error)
}

// ChainResult carries the chain outcome. URL always holds a displayable value:
// the winning URL, or a ContentErrorPrefix message when Err is set.
type ChainResult struct {
	URL   string
	Stage string
	Err   error
}

// Failed reports whether every attempt failed.
func (r ChainResult) Failed() bool {
	return r.Err != nil
}

// RunChain evaluates attempts in order and returns the first non-empty URL.
func RunChain(ctx context.Context, attempts []Attempt) ChainResult {
	lastErr := errors.New("no attempts configured")
	for _, attempt := range attempts {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		url, err := runAttempt(ctx, attempt)
		if err == nil {
			return ChainResult{URL: url, Stage: attempt.Stage}
		}
		telemetry.Warn("media.chain.attempt_failed", map[string]any{
			"stage": attempt.Stage,
			"error": err,
		})
		lastErr = fmt.Errorf("%s: %w", attempt.Stage, err)
	}
	return ChainResult{
		URL: ContentErrorPrefix + lastErr.Error(),
		Err: lastErr,
	}
}

func runAttempt(ctx context.Context, attempt Attempt) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	out, err := attempt.Run(ctx)
	if err != nil {
		return "", err
	}
	return NormalizeURL(out)
}
