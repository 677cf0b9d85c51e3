package resumes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-resume-api/internal/insights"
	"cat-resume-api/internal/media"
	"cat-resume-api/internal/shared/metrics"
	"cat-resume-api/internal/uploads"
)

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, a Analysis) error {
	return errors.New("connection refused")
}

func (failingRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	return Analysis{}, ErrNotFound
}

func (failingRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return nil, errors.New("connection refused")
}

func writeTempFile(t *testing.T, data []byte) *uploads.TempFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return &uploads.TempFile{Path: path, OriginalName: "cv.pdf", ContentType: "application/pdf", RequestID: "req-1"}
}

func plainText(ctx context.Context, data []byte, mimeType string) (string, error) {
	return string(data), nil
}

// fallbackCount reads the stage fallback counter from the rendered exposition.
func fallbackCount(t *testing.T, stage string) uint64 {
	t.Helper()
	prefix := `stage_fallbacks_total{stage="` + stage + `"} `
	for _, line := range strings.Split(metrics.Render(), "\n") {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			n, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
			require.NoError(t, err)
			return n
		}
	}
	return 0
}

func TestProcessRecordsFallbackStages(t *testing.T) {
	before := fallbackCount(t, StageSummary)
	analyzer := &fakeAnalyzer{
		summaryErr: errors.New("llm down"),
		score:      insights.ScoreResult{Score: 2, Justification: "Needs more Go."},
	}
	repo := NewMemoryRepo()
	svc := &Service{
		Analyzer: analyzer,
		Media:    &fakeMedia{},
		Repo:     repo,
		Extract:  plainText,
		NewID:    func() string { return "analysis-1" },
	}

	analysis, err := svc.Process(context.Background(), writeTempFile(t, []byte("resume text")))
	require.NoError(t, err)
	assert.Equal(t, "analysis-1", analysis.ID)
	assert.Equal(t, []string{StageSummary}, analysis.FallbackStages)
	assert.Equal(t, "Unable to generate summary. Please try again later.", analysis.Summary)
	assert.Equal(t, string(media.ToneConcerned), analysis.Tone)
	assert.Equal(t, 2, analysis.Score)
	assert.Equal(t, before+1, fallbackCount(t, StageSummary))

	stored, err := repo.GetByID(context.Background(), "analysis-1")
	require.NoError(t, err)
	assert.Equal(t, analysis.ResumeSHA256, stored.ResumeSHA256)
	assert.Len(t, stored.ResumeSHA256, 64)
}

func TestProcessSucceedsWhenHistoryFails(t *testing.T) {
	svc := &Service{
		Analyzer: &fakeAnalyzer{},
		Media:    &fakeMedia{},
		Repo:     failingRepo{},
		Extract:  plainText,
	}

	analysis, err := svc.Process(context.Background(), writeTempFile(t, []byte("resume text")))
	require.NoError(t, err)
	assert.Empty(t, analysis.FallbackStages)
	assert.NotEmpty(t, analysis.ID)
}

func TestProcessExtractErrorIsReturned(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := &Service{
		Analyzer: analyzer,
		Media:    &fakeMedia{},
		Extract: func(ctx context.Context, data []byte, mimeType string) (string, error) {
			return "", errors.New("bad xref")
		},
	}

	_, err := svc.Process(context.Background(), writeTempFile(t, []byte("x")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract text")
	assert.Zero(t, analyzer.calls)
}

func TestProcessMissingFile(t *testing.T) {
	svc := &Service{Analyzer: &fakeAnalyzer{}, Media: &fakeMedia{}}
	_, err := svc.Process(context.Background(), &uploads.TempFile{Path: filepath.Join(t.TempDir(), "gone.pdf")})
	require.Error(t, err)
}

func TestProcessDuration(t *testing.T) {
	base := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc := &Service{
		Analyzer: &fakeAnalyzer{},
		Media:    &fakeMedia{},
		Extract:  plainText,
		Now: func() time.Time {
			calls++
			return base.Add(time.Duration(calls-1) * 1500 * time.Millisecond)
		},
	}

	analysis, err := svc.Process(context.Background(), writeTempFile(t, []byte("resume")))
	require.NoError(t, err)
	assert.Equal(t, 1500.0, analysis.DurationMs)
	assert.Equal(t, base.Add(1500*time.Millisecond), analysis.CreatedAt)
}

func TestServiceWithoutRepo(t *testing.T) {
	svc := &Service{}
	_, err := svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
	items, err := svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
