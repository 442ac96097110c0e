package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject recovers the first balanced JSON object from raw model
// output. Models regularly wrap JSON in prose or markdown fences, so the
// whole response is scanned for a {...} span rather than unmarshaled as-is.
func ExtractJSONObject(raw string) (map[string]any, error) {
	span, ok := firstObjectSpan(raw)
	if !ok {
		return nil, &MalformedResponseError{
			Reason:  "no JSON object found",
			Snippet: Truncate(strings.TrimSpace(raw), 200),
		}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, &MalformedResponseError{
			Reason:  "invalid JSON: " + err.Error(),
			Snippet: Truncate(span, 200),
		}
	}
	return obj, nil
}

// firstObjectSpan returns the first substring of s that is a balanced
// top-level {...} span, honoring string literals and escapes.
func firstObjectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
