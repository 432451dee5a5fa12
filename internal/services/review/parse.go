package review

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model responses are expected to be bare JSON but frequently arrive wrapped
// in markdown fences or carrying trailing commas. decodeLenient runs an
// ordered chain of progressively more permissive repairs and stops at the
// first successful decode.

var (
	fencePattern         = regexp.MustCompile(`(?s)^\s*` + "```" + `(?:json|JSON)?\s*\n?(.*?)\n?\s*` + "```" + `\s*$`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// decodeLenient attempts strict JSON decoding, then fence-stripped, then
// trailing-comma-repaired. Returns the last decode error when all attempts
// fail; callers treat that as zero findings, never as a crash.
func decodeLenient(raw string, v any) error {
	stripped := stripMarkdownFences(raw)
	attempts := []string{
		strings.TrimSpace(raw),
		stripped,
		trailingCommaPattern.ReplaceAllString(stripped, "$1"),
	}

	var lastErr error
	for _, attempt := range attempts {
		if err := json.Unmarshal([]byte(attempt), v); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return lastErr
}

// stripMarkdownFences removes ```json ... ``` wrappers and surrounding
// whitespace from a model response.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}

	// Fallback: simple prefix/suffix trimming
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
