package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing(msg string, calls *[]string, stage string) func(context.Context) (MediaOutput, error) {
	return func(context.Context) (MediaOutput, error) {
		*calls = append(*calls, stage)
		return nil, errors.New(msg)
	}
}

func TestRunChainFirstSuccessWins(t *testing.T) {
	var calls []string
	result := RunChain(context.Background(), []Attempt{
		{Stage: StagePrimary, Run: failing("svd unavailable", &calls, StagePrimary)},
		{Stage: StageSecondaryVideo, Run: func(context.Context) (MediaOutput, error) {
			calls = append(calls, StageSecondaryVideo)
			return Sequence{"https://r.delivery/video.mp4"}, nil
		}},
		{Stage: StageStaticFallback, Run: failing("unreachable", &calls, StageStaticFallback)},
	})

	require.False(t, result.Failed())
	assert.Equal(t, "https://r.delivery/video.mp4", result.URL)
	assert.Equal(t, StageSecondaryVideo, result.Stage)
	assert.Equal(t, []string{StagePrimary, StageSecondaryVideo}, calls)
}

func TestRunChainEmptyOutputFallsThrough(t *testing.T) {
	result := RunChain(context.Background(), []Attempt{
		{Stage: StagePrimary, Run: func(context.Context) (MediaOutput, error) { return Sequence{}, nil }},
		{Stage: StageStaticFallback, Run: func(context.Context) (MediaOutput, error) { return Text("https://r.delivery/cat.png"), nil }},
	})

	assert.Equal(t, StageStaticFallback, result.Stage)
	assert.Equal(t, "https://r.delivery/cat.png", result.URL)
}

func TestRunChainAllFailReturnsSentinel(t *testing.T) {
	var calls []string
	result := RunChain(context.Background(), []Attempt{
		{Stage: StagePrimary, Run: failing("primary boom", &calls, StagePrimary)},
		{Stage: StageSecondaryVideo, Run: failing("secondary boom", &calls, StageSecondaryVideo)},
		{Stage: StageStaticFallback, Run: failing("static boom", &calls, StageStaticFallback)},
	})

	require.True(t, result.Failed())
	assert.True(t, strings.HasPrefix(result.URL, "Error generating content:"), result.URL)
	assert.Contains(t, result.URL, "static boom")
	assert.Len(t, calls, 3)
}

func TestRunChainRecoversPanics(t *testing.T) {
	result := RunChain(context.Background(), []Attempt{
		{Stage: StagePrimary, Run: func(context.Context) (MediaOutput, error) { panic("nil model") }},
		{Stage: StageStaticFallback, Run: func(context.Context) (MediaOutput, error) { return Text("https://r.delivery/ok.png"), nil }},
	})

	assert.Equal(t, "https://r.delivery/ok.png", result.URL)
}

func TestRunChainStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	result := RunChain(ctx, []Attempt{
		{Stage: StagePrimary, Run: func(context.Context) (MediaOutput, error) {
			called = true
			return Text("x"), nil
		}},
	})

	assert.False(t, called)
	assert.True(t, result.Failed())
	assert.True(t, strings.HasPrefix(result.URL, ContentErrorPrefix))
}
