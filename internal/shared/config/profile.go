package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultJobDescription = `Senior Software Engineer
We are looking for an engineer with 5+ years of experience building backend services.
Requirements: strong Go or JavaScript skills, REST API design, cloud infrastructure (AWS or GCP),
relational databases, CI/CD, and clear written communication. Experience mentoring other engineers
and shipping customer-facing products is a plus.`

// JobProfile is the immutable job description and fallback set used to evaluate resumes.
type JobProfile struct {
	JobDescription       string   `yaml:"job_description" validate:"required"`
	DefaultHighlights    []string `yaml:"default_highlights" validate:"len=5,dive,required"`
	DefaultKeywords      []string `yaml:"default_keywords" validate:"len=5,dive,required"`
	HighlightPlaceholder string   `yaml:"highlight_placeholder" validate:"required"`
	SummaryFallback      string   `yaml:"summary_fallback" validate:"required"`
}

// DefaultJobProfile returns the built-in profile used when no profile file is configured.
func DefaultJobProfile() JobProfile {
	return JobProfile{
		JobDescription:       defaultJobDescription,
		DefaultHighlights:    []string{"Professional Experience", "Technical Skills", "Education", "Achievements", "Key Strengths"},
		DefaultKeywords:      []string{"Key Experience", "Technical Skills", "Education", "Achievements", "Core Competencies"},
		HighlightPlaceholder: "Resume highlight",
		SummaryFallback:      "Unable to generate summary. Please try again later.",
	}
}

// LoadJobProfile reads a YAML profile from path, filling unset fields from the defaults.
// An empty path yields DefaultJobProfile.
func LoadJobProfile(path string) (JobProfile, error) {
	profile := DefaultJobProfile()
	if strings.TrimSpace(path) == "" {
		return profile, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return JobProfile{}, fmt.Errorf("read job profile %s: %w", path, err)
	}

	var fromFile JobProfile
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return JobProfile{}, fmt.Errorf("parse job profile %s: %w", path, err)
	}

	if s := strings.TrimSpace(fromFile.JobDescription); s != "" {
		profile.JobDescription = s
	}
	if len(fromFile.DefaultHighlights) > 0 {
		profile.DefaultHighlights = trimEntries(fromFile.DefaultHighlights)
	}
	if len(fromFile.DefaultKeywords) > 0 {
		profile.DefaultKeywords = trimEntries(fromFile.DefaultKeywords)
	}
	if s := strings.TrimSpace(fromFile.HighlightPlaceholder); s != "" {
		profile.HighlightPlaceholder = s
	}
	if s := strings.TrimSpace(fromFile.SummaryFallback); s != "" {
		profile.SummaryFallback = s
	}

	if err := validate.Struct(profile); err != nil {
		return JobProfile{}, fmt.Errorf("job profile %s: %w", path, err)
	}
	return profile, nil
}

// trimEntries trims each entry so whitespace-only values fail the required check.
func trimEntries(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
