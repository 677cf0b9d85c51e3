package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameRunes = 200

// ErrInvalidFileName is returned for names that are blank or attempt traversal.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe to log and echo back.
// Path separators become underscores, control characters are dropped and the
// result is capped at 200 runes.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == maxFileNameRunes {
			break
		}
		switch {
		case r == '/' || r == '\\':
			r = '_'
		case unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
		n++
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrInvalidFileName
	}
	return b.String(), nil
}
