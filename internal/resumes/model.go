package resumes

import "time"

// Pipeline stages that can fall back to a default value.
const (
	StageSummary    = "summary"
	StageHighlights = "highlights"
	StageKeywords   = "keywords"
	StageScore      = "score"
	StageImage      = "image"
	StageAudio      = "audio"
	StageVideo      = "video"
)

// Result is the response body for a processed resume.
type Result struct {
	Summary       string   `json:"summary"`
	Highlights    []string `json:"highlights"`
	Keywords      []string `json:"keywords"`
	ImageURL      string   `json:"imageUrl"`
	AudioURL      string   `json:"audioUrl"`
	VideoURL      string   `json:"videoUrl,omitempty"`
	Score         int      `json:"score"`
	Tone          string   `json:"tone"`
	Justification string   `json:"justification"`
}

// Analysis is a processed resume as kept in history. The resume text is never stored.
type Analysis struct {
	ID           string `json:"id"`
	RequestID    string `json:"requestId,omitempty"`
	ResumeSHA256 string `json:"resumeSha256"`
	FileName     string `json:"fileName,omitempty"`
	Result
	FallbackStages []string  `json:"fallbackStages"`
	DurationMs     float64   `json:"durationMs"`
	CreatedAt      time.Time `json:"createdAt"`
}
