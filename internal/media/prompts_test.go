package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Tone
	}{
		{score: 5, want: ToneExcited},
		{score: 4, want: ToneExcited},
		{score: 3, want: ToneEncouraging},
		{score: 2, want: ToneConcerned},
		{score: 1, want: ToneConcerned},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToneForScore(tt.score), "score=%d", tt.score)
	}
}

func TestCoerceHighlights(t *testing.T) {
	assert.Equal(t,
		[]string{"Go", "SQL", SkillPlaceholder, SkillPlaceholder, SkillPlaceholder},
		CoerceHighlights([]string{" Go ", "", "SQL"}))

	long := []string{"a", "b", "c", "d", "e", "f", "g"}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, CoerceHighlights(long))
	assert.Len(t, CoerceHighlights(nil), HighlightCount)
}

func TestHighlightsFromSummary(t *testing.T) {
	summary := "Led a platform team of twelve engineers. Cut cloud spend by forty percent! Built a payments ledger in Go. Ok."
	got := HighlightsFromSummary(summary)
	require.Len(t, got, 3)
	assert.Equal(t, "Led a platform team of twelve engineers", got[0])

	assert.Equal(t, summaryFallbackHighlights, HighlightsFromSummary("Short. Too short."))
}

func TestCatScriptUsesToneAndAllHighlights(t *testing.T) {
	highlights := []string{"Ten years of Go", "Led migrations", "Kubernetes expert", "Mentors juniors", "Open source maintainer"}

	excited, err := CatScript(highlights, ToneExcited)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(excited, "Meow! Hello there, I'm Professor Whiskers"))
	assert.Contains(t, excited, "First, Ten years of Go! That's quite remarkable")
	assert.Contains(t, excited, "And finally, Open source maintainer! Simply amazing!")
	assert.True(t, strings.HasSuffix(excited, "Meow meow!"))

	concerned, err := CatScript(highlights[:2], ToneConcerned)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(concerned, "Mrrow..."))
	assert.Contains(t, concerned, "Third, "+SkillPlaceholder+"!")
	assert.NotContains(t, concerned, "Simply amazing")
}

func TestImagePromptListsFiveItems(t *testing.T) {
	prompt := ImagePrompt([]string{"Go", "AWS"})
	assert.Contains(t, prompt, "showing: Go, AWS, Professional Skill, Professional Skill, Professional Skill.")
	assert.Contains(t, TextVideoPrompt([]string{"Go", "AWS", "SQL"}), "about Go, AWS and SQL")
}
