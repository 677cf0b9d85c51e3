package media

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// HighlightCount is the number of highlights every prompt expects.
const HighlightCount = 5

// SkillPlaceholder pads highlight lists that come up short.
const SkillPlaceholder = "Professional Skill"

var summaryFallbackHighlights = []string{"Experience", "Skills", "Education", "Achievements", "Strengths"}

// Tone is the narration mood chosen from the fit score.
type Tone string

const (
	ToneExcited     Tone = "excited"
	ToneEncouraging Tone = "encouraging"
	ToneConcerned   Tone = "concerned"
)

// ToneForScore maps a 1-5 fit score to a narration tone.
// Scores of 4 and above are excited, 2 and below concerned.
func ToneForScore(score int) Tone {
	switch {
	case score >= 4:
		return ToneExcited
	case score <= 2:
		return ToneConcerned
	default:
		return ToneEncouraging
	}
}

type toneLines struct {
	Opening   string
	Closing   string
	Reactions [HighlightCount]string
}

var toneScripts = map[Tone]toneLines{
	ToneExcited: {
		Opening: "Meow! Hello there, I'm Professor Whiskers, and today I'm reviewing a very impressive resume!",
		Closing: "Overall, this is one exceptional candidate that any company would be lucky to have! Meow meow!",
		Reactions: [HighlightCount]string{
			"That's quite remarkable, isn't it? Meow!",
			"Very impressive skills indeed!",
			"Absolutely purrfect qualifications!",
			"This candidate really stands out!",
			"Simply amazing!",
		},
	},
	ToneEncouraging: {
		Opening: "Meow! Hello there, I'm Professor Whiskers, and today I'm reviewing a promising resume.",
		Closing: "Overall, this candidate shows real potential. With a little more grooming, they could be the cat's whiskers! Meow!",
		Reactions: [HighlightCount]string{
			"A solid start! Meow!",
			"That's a skill worth building on!",
			"Nicely done!",
			"Keep sharpening those claws!",
			"A promising sign!",
		},
	},
	ToneConcerned: {
		Opening: "Mrrow... Hello there, I'm Professor Whiskers, and today I'm reviewing a resume that needs some work.",
		Closing: "Overall, this candidate isn't quite the right fit for this role yet, but every kitten grows into a cat. Meow.",
		Reactions: [HighlightCount]string{
			"Hmm, let me think about that. Mrrow.",
			"That's a start, I suppose.",
			"We'll need a bit more here.",
			"Not quite what we're hunting for.",
			"There's room to grow.",
		},
	},
}

var ordinals = [HighlightCount]string{"First", "Second", "Third", "Fourth", "And finally"}

//go:embed prompts/cat_script.tmpl
var catScriptSource string

var catScriptTemplate = template.Must(template.New("cat_script").Parse(catScriptSource))

// CoerceHighlights trims entries, drops blanks, pads with SkillPlaceholder and truncates to HighlightCount.
func CoerceHighlights(highlights []string) []string {
	out := make([]string, 0, HighlightCount)
	for _, h := range highlights {
		if len(out) == HighlightCount {
			break
		}
		if trimmed := strings.TrimSpace(h); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	for len(out) < HighlightCount {
		out = append(out, SkillPlaceholder)
	}
	return out
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// HighlightsFromSummary derives narration highlights from summary sentences
// when the extractor produced none.
func HighlightsFromSummary(summary string) []string {
	var sentences []string
	for _, s := range sentenceSplit.Split(summary, -1) {
		s = strings.TrimSpace(s)
		if len(s) > 10 {
			sentences = append(sentences, s)
		}
		if len(sentences) == HighlightCount {
			break
		}
	}
	if len(sentences) >= 3 {
		return sentences
	}
	return append([]string(nil), summaryFallbackHighlights...)
}

// CatScript renders the Professor Whiskers narration for the given tone.
func CatScript(highlights []string, tone Tone) (string, error) {
	lines, ok := toneScripts[tone]
	if !ok {
		lines = toneScripts[ToneEncouraging]
	}
	data := struct {
		Opening    string
		Closing    string
		Reactions  [HighlightCount]string
		Highlights []string
		Ordinals   [HighlightCount]string
	}{
		Opening:    lines.Opening,
		Closing:    lines.Closing,
		Reactions:  lines.Reactions,
		Highlights: CoerceHighlights(highlights),
		Ordinals:   ordinals,
	}

	var b strings.Builder
	if err := catScriptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render cat script: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// ImagePrompt describes a cat presenting the given points on a slide.
func ImagePrompt(points []string) string {
	return fmt.Sprintf("A cute professional cat in a business suit presenting a resume on a screen. "+
		"The cat is pointing to a bullet-point list showing: %s. "+
		"Corporate office setting, colorful, detailed, professional lighting.",
		strings.Join(CoerceHighlights(points), ", "))
}

// NegativePrompt lists artifacts the image model should avoid.
const NegativePrompt = "poor quality, blurry, distorted, disfigured, bad anatomy, text, watermark, signature, bad proportions"

// ReferenceFramePrompt is the fixed scene used as the first frame of the primary video.
const ReferenceFramePrompt = "A cute professional cat in a business suit standing next to a large presentation screen " +
	"in a bright modern office, facing the camera, colorful, detailed, professional lighting."

// VideoOverlayPrompt describes the motion and on-screen highlights for image-to-video models.
func VideoOverlayPrompt(highlights []string) string {
	return fmt.Sprintf("The cat gestures at the screen as bullet points appear one by one: %s. Smooth, gentle camera push-in.",
		strings.Join(CoerceHighlights(highlights), "; "))
}

// TextVideoPrompt is the simplified prompt for text-to-video models.
func TextVideoPrompt(highlights []string) string {
	h := CoerceHighlights(highlights)
	return fmt.Sprintf("A cat in a business suit presenting a resume slide about %s, %s and %s, office, cinematic",
		h[0], h[1], h[2])
}
