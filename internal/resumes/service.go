package resumes

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"cat-resume-api/internal/extract"
	"cat-resume-api/internal/insights"
	"cat-resume-api/internal/media"
	"cat-resume-api/internal/shared/metrics"
	"cat-resume-api/internal/shared/telemetry"
	"cat-resume-api/internal/shared/util"
	"cat-resume-api/internal/uploads"
)

// Analyzer produces the text insights for a resume.
type Analyzer interface {
	Summarize(ctx context.Context, resumeText string) (string, error)
	Highlights(ctx context.Context, resumeText string) ([]string, error)
	Keywords(ctx context.Context, resumeText string) ([]string, error)
	Score(ctx context.Context, resumeText string) (insights.ScoreResult, error)
}

// MediaGenerator produces the cat media for a resume.
type MediaGenerator interface {
	CatImage(ctx context.Context, keywords []string) (string, error)
	CatAudio(ctx context.Context, summary string, highlights []string, score int) (string, error)
	CatVideo(ctx context.Context, highlights []string) media.ChainResult
}

// TextExtractor returns the plain text of an uploaded document.
type TextExtractor func(ctx context.Context, data []byte, mimeType string) (string, error)

// Service runs the resume pipeline and records history.
type Service struct {
	Analyzer     Analyzer
	Media        MediaGenerator
	Repo         Repo
	Extract      TextExtractor
	VideoEnabled bool

	Now   func() time.Time
	NewID func() string
}

// Process runs every stage in order for an accepted upload.
// Stage failures become fallback values; only unreadable input is returned as an error.
func (s *Service) Process(ctx context.Context, tf *uploads.TempFile) (Analysis, error) {
	start := s.now()
	data, err := os.ReadFile(tf.Path)
	if err != nil {
		return Analysis{}, fmt.Errorf("read upload: %w", err)
	}
	text, err := s.extractor()(ctx, data, tf.ContentType)
	if err != nil {
		return Analysis{}, fmt.Errorf("extract text: %w", err)
	}
	telemetry.Info("resume.text_extracted", map[string]any{
		"request_id": tf.RequestID,
		"chars":      len(text),
	})

	run := &pipelineRun{requestID: tf.RequestID, fallbacks: []string{}}

	summary, err := s.Analyzer.Summarize(ctx, text)
	run.check(StageSummary, err)
	highlights, err := s.Analyzer.Highlights(ctx, text)
	run.check(StageHighlights, err)
	keywords, err := s.Analyzer.Keywords(ctx, text)
	run.check(StageKeywords, err)
	score, err := s.Analyzer.Score(ctx, text)
	run.check(StageScore, err)

	imageURL, err := s.Media.CatImage(ctx, keywords)
	run.check(StageImage, err)
	audioURL, err := s.Media.CatAudio(ctx, summary, highlights, score.Score)
	run.check(StageAudio, err)

	var videoURL string
	if s.VideoEnabled {
		video := s.Media.CatVideo(ctx, highlights)
		videoURL = video.URL
		if video.Failed() {
			run.check(StageVideo, video.Err)
		} else {
			telemetry.Info("resume.video_stage", map[string]any{
				"request_id": tf.RequestID,
				"stage":      video.Stage,
			})
		}
	}

	analysis := Analysis{
		ID:           s.newID(),
		RequestID:    tf.RequestID,
		ResumeSHA256: util.ContentHash(data),
		FileName:     tf.OriginalName,
		Result: Result{
			Summary:       summary,
			Highlights:    highlights,
			Keywords:      keywords,
			ImageURL:      imageURL,
			AudioURL:      audioURL,
			VideoURL:      videoURL,
			Score:         score.Score,
			Tone:          string(media.ToneForScore(score.Score)),
			Justification: score.Justification,
		},
		FallbackStages: run.fallbacks,
		CreatedAt:      s.now().UTC(),
	}
	analysis.DurationMs = float64(analysis.CreatedAt.Sub(start.UTC()).Microseconds()) / 1000.0
	metrics.ObservePipelineDurationMs(analysis.DurationMs)

	s.record(ctx, analysis)
	return analysis, nil
}

// Get returns a recorded analysis.
func (s *Service) Get(ctx context.Context, id string) (Analysis, error) {
	if s.Repo == nil {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns recorded analyses, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if s.Repo == nil {
		return []Analysis{}, nil
	}
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) record(ctx context.Context, analysis Analysis) {
	if s.Repo == nil {
		return
	}
	if err := s.Repo.Create(context.WithoutCancel(ctx), analysis); err != nil {
		telemetry.Warn("resume.history.record_failed", map[string]any{
			"request_id":  analysis.RequestID,
			"analysis_id": analysis.ID,
			"error":       err,
		})
	}
}

type pipelineRun struct {
	requestID string
	fallbacks []string
}

func (r *pipelineRun) check(stage string, err error) {
	if err == nil {
		return
	}
	r.fallbacks = append(r.fallbacks, stage)
	metrics.IncStageFallback(stage)
	telemetry.Warn("resume.stage_fallback", map[string]any{
		"request_id": r.requestID,
		"stage":      stage,
		"error_code": insights.Classify(err),
		"error":      err,
	})
}

func (s *Service) extractor() TextExtractor {
	if s.Extract != nil {
		return s.Extract
	}
	return extract.ExtractTextFromBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
