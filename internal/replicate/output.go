package replicate

import (
	"github.com/tidwall/gjson"

	"cat-resume-api/internal/media"
)

// decodeOutput maps a prediction's output field onto the media output variants.
func decodeOutput(out gjson.Result) (media.MediaOutput, error) {
	switch {
	case !out.Exists() || out.Type == gjson.Null:
		return nil, ErrNullOutput
	case out.IsArray():
		var seq media.Sequence
		out.ForEach(func(_, item gjson.Result) bool {
			seq = append(seq, itemString(item))
			return true
		})
		return seq, nil
	case out.Type == gjson.String:
		return media.Text(out.String()), nil
	default:
		return media.Opaque{Value: jsonValue{raw: out}}, nil
	}
}

func itemString(item gjson.Result) string {
	if item.IsObject() {
		if u := item.Get("url"); u.Exists() {
			return u.String()
		}
		return item.Raw
	}
	return item.String()
}

// jsonValue is an output shape that is neither a string nor a list.
type jsonValue struct {
	raw gjson.Result
}

// String prefers an embedded url field and falls back to the raw JSON.
func (v jsonValue) String() string {
	if u := v.raw.Get("url"); u.Exists() {
		return u.String()
	}
	return v.raw.Raw
}
