package insights

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// ScoreResult is a 1-5 fit rating against the job description.
type ScoreResult struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

// DefaultScore is returned whenever a score cannot be obtained.
var DefaultScore = ScoreResult{Score: 3, Justification: "Could not evaluate resume; defaulting to average fit."}

const scoreSchema = `{
  "type": "object",
  "required": ["score", "justification"],
  "properties": {
    "score": {"type": "integer", "minimum": 1, "maximum": 5},
    "justification": {"type": "string", "minLength": 1, "pattern": "\\S"}
  }
}`

var scoreSchemaLoader = gojsonschema.NewStringLoader(scoreSchema)

// ParseScore locates the first JSON object in raw and validates it as a ScoreResult.
func ParseScore(raw string) (ScoreResult, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	obj, ok := firstObject(text)
	if !ok || !gjson.Valid(obj) {
		return ScoreResult{}, ErrNoJSONObject
	}

	res, err := gojsonschema.Validate(scoreSchemaLoader, gojsonschema.NewStringLoader(obj))
	if err != nil {
		return ScoreResult{}, fmt.Errorf("%w: %v", ErrScoreInvalid, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return ScoreResult{}, fmt.Errorf("%w: %s", ErrScoreInvalid, strings.Join(msgs, "; "))
	}

	doc := gjson.Parse(obj)
	return ScoreResult{
		Score:         int(doc.Get("score").Int()),
		Justification: strings.TrimSpace(doc.Get("justification").String()),
	}, nil
}
