package insights

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	minHeuristicMatches = 3
	chunkWords          = 5
	minLineLength       = 10
)

var (
	numberedLine = regexp.MustCompile(`(?m)^\s*\d+\.\s*(\S.*)$`)
	bulletLine   = regexp.MustCompile(`(?m)^\s*[•\-*]\s*(\S.*)$`)
)

// ExtractList turns a loosely formatted model response into exactly n non-empty items,
// padding with placeholder when fewer are found.
func ExtractList(raw string, n int, placeholder string) []string {
	text := stripCodeFence(strings.TrimSpace(raw))

	items, ok := listFromJSON(text)
	if !ok {
		items, ok = listFromEmbeddedArray(text)
	}
	if !ok {
		items, ok = listFromText(text)
	}
	if !ok {
		items = wordChunks(text, n)
	}
	return fitList(items, n, placeholder)
}

func listFromJSON(text string) ([]string, bool) {
	if !gjson.Valid(text) {
		return nil, false
	}
	doc := gjson.Parse(text)
	switch {
	case doc.IsArray():
		return arrayStrings(doc), true
	case doc.IsObject():
		return listFromObject(doc), true
	default:
		return nil, false
	}
}

func listFromObject(doc gjson.Result) []string {
	if h := doc.Get("highlights"); h.IsArray() {
		return arrayStrings(h)
	}

	var (
		flattened []string
		sawArray  bool
		keys      []string
		values    []string
	)
	doc.ForEach(func(key, value gjson.Result) bool {
		keys = append(keys, key.String())
		values = append(values, value.String())
		if value.IsArray() {
			sawArray = true
			flattened = append(flattened, arrayStrings(value)...)
		}
		return true
	})
	if sawArray {
		return flattened
	}
	if ordered, ok := valuesByNumericKey(doc); ok {
		return ordered
	}
	if len(keys) > 0 && allPhrases(keys) {
		return keys
	}
	return values
}

func valuesByNumericKey(doc gjson.Result) ([]string, bool) {
	type entry struct {
		n     int
		value string
	}
	var entries []entry
	numeric := true
	doc.ForEach(func(key, value gjson.Result) bool {
		n, err := strconv.Atoi(strings.TrimSpace(key.String()))
		if err != nil {
			numeric = false
			return false
		}
		entries = append(entries, entry{n: n, value: value.String()})
		return true
	})
	if !numeric || len(entries) == 0 {
		return nil, false
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].n < entries[j].n })
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.value)
	}
	return out, true
}

// allPhrases reports whether every key reads like natural language rather than an identifier.
func allPhrases(keys []string) bool {
	for _, k := range keys {
		if !strings.ContainsAny(strings.TrimSpace(k), " \t") {
			return false
		}
	}
	return true
}

func listFromEmbeddedArray(text string) ([]string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate := text[start : end+1]
	if !gjson.Valid(candidate) {
		return nil, false
	}
	doc := gjson.Parse(candidate)
	if !doc.IsArray() {
		return nil, false
	}
	return arrayStrings(doc), true
}

func listFromText(text string) ([]string, bool) {
	if items := submatches(numberedLine, text); len(items) >= minHeuristicMatches {
		return items, true
	}
	if items := submatches(bulletLine, text); len(items) >= minHeuristicMatches {
		return items, true
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minLineLength || strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "Top") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) >= minHeuristicMatches {
		return lines, true
	}
	return nil, false
}

func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

func wordChunks(text string, n int) []string {
	words := strings.Fields(text)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		start := i * chunkWords
		if start >= len(words) {
			break
		}
		end := min(start+chunkWords, len(words))
		out = append(out, strings.Join(words[start:end], " ")+"...")
	}
	return out
}

func arrayStrings(arr gjson.Result) []string {
	var out []string
	arr.ForEach(func(_, item gjson.Result) bool {
		out = append(out, item.String())
		return true
	})
	return out
}

func fitList(items []string, n int, placeholder string) []string {
	out := make([]string, 0, n)
	for _, item := range items {
		if len(out) == n {
			break
		}
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	for len(out) < n {
		out = append(out, placeholder)
	}
	return out
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.Index(text, "\n"); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// firstObject returns the span from the first '{' to the last '}'.
func firstObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
