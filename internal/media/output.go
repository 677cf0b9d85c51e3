package media

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyOutput signals that a generation call returned nothing usable as a URL.
var ErrEmptyOutput = errors.New("EMPTY_OUTPUT")

// MediaOutput is the set of shapes a generation backend may return.
// Exactly one of Text, Sequence or Opaque implements it.
type MediaOutput interface {
	mediaOutput()
}

// Text is a bare URL string.
type Text string

// Sequence is a list of outputs, typically one URL per generated frame or image.
type Sequence []string

// Opaque is a value that only exposes a string conversion.
type Opaque struct {
	Value fmt.Stringer
}

func (Text) mediaOutput()     {}
func (Sequence) mediaOutput() {}
func (Opaque) mediaOutput()   {}

// NormalizeURL collapses out into a single URL.
// A non-empty Sequence yields its first element.
func NormalizeURL(out MediaOutput) (string, error) {
	var url string
	switch v := out.(type) {
	case Sequence:
		if len(v) == 0 {
			return "", ErrEmptyOutput
		}
		url = v[0]
	case Text:
		url = string(v)
	case Opaque:
		if v.Value == nil {
			return "", ErrEmptyOutput
		}
		url = v.Value.String()
	default:
		return "", ErrEmptyOutput
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrEmptyOutput
	}
	return url, nil
}
