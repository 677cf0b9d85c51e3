package insights

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/summary.txt
	summaryPrompt string
	//go:embed prompts/highlights.txt
	highlightsPrompt string
	//go:embed prompts/keywords.txt
	keywordsPrompt string
	//go:embed prompts/score.txt
	scorePrompt string
)

const systemPrompt = "You are an expert resume analyzer working with a team of very opinionated cats."

func renderPrompt(template, resumeText, jobDescription string) string {
	return strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{SCORE_SCHEMA}}", scoreSchema,
	).Replace(template)
}
