package insights

import (
	"context"
	"errors"
	"strings"

	"cat-resume-api/internal/llm"
)

var (
	ErrNoJSONObject = errors.New("llm output has no json object")
	ErrScoreInvalid = errors.New("llm output invalid score")
)

const (
	ErrorCodeLLMTimeout        = "LLM_TIMEOUT"
	ErrorCodeLLMUnavailable    = "LLM_UNAVAILABLE"
	ErrorCodeLLMEmpty          = "LLM_EMPTY"
	ErrorCodeLLMSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	ErrorCodeInternal          = "INTERNAL_ERROR"
)

// Classify maps a stage error to a stable code for logs and metrics.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeLLMTimeout
	case errors.Is(err, llm.ErrNotImplemented):
		return ErrorCodeLLMUnavailable
	case errors.Is(err, llm.ErrEmptyCompletion):
		return ErrorCodeLLMEmpty
	case errors.Is(err, ErrNoJSONObject), errors.Is(err, ErrScoreInvalid):
		return ErrorCodeLLMSchemaMismatch
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") {
		return ErrorCodeLLMTimeout
	}
	return ErrorCodeInternal
}
