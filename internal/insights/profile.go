package insights

import "cat-resume-api/internal/shared/config"

const defaultPlaceholder = "Resume highlight"

// Profile is the job description and fallback values an Analyzer evaluates against.
// Slices are copied on construction and on read.
type Profile struct {
	jobDescription       string
	defaultHighlights    []string
	defaultKeywords      []string
	highlightPlaceholder string
	summaryFallback      string
}

// NewProfile builds a Profile from a loaded job profile.
func NewProfile(p config.JobProfile) Profile {
	return Profile{
		jobDescription:       p.JobDescription,
		defaultHighlights:    append([]string(nil), p.DefaultHighlights...),
		defaultKeywords:      append([]string(nil), p.DefaultKeywords...),
		highlightPlaceholder: p.HighlightPlaceholder,
		summaryFallback:      p.SummaryFallback,
	}
}

// JobDescription is the role text resumes are scored against.
func (p Profile) JobDescription() string { return p.jobDescription }

// SummaryFallback replaces the summary when generation fails.
func (p Profile) SummaryFallback() string { return p.summaryFallback }

// HighlightPlaceholder pads short lists. It is never empty.
func (p Profile) HighlightPlaceholder() string {
	if p.highlightPlaceholder == "" {
		return defaultPlaceholder
	}
	return p.highlightPlaceholder
}

// DefaultHighlights returns a copy of the highlights used when extraction fails.
func (p Profile) DefaultHighlights() []string {
	return append([]string(nil), p.defaultHighlights...)
}

// DefaultKeywords returns a copy of the keywords used when extraction fails.
func (p Profile) DefaultKeywords() []string {
	return append([]string(nil), p.defaultKeywords...)
}
