// Package jsonutil extracts and parses JSON from model responses that may
// arrive wrapped in markdown code fences or surrounded by prose.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripMarkdownFences removes a ```json ... ``` (or plain ``` ... ```)
// wrapper from text. Returns the content between the fences, or the input
// unchanged if it is not fenced.
func StripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	body, found := strings.CutPrefix(text, "```")
	if !found {
		return text
	}

	// Drop the rest of the opening fence line, which may carry a language tag.
	newline := strings.IndexByte(body, '\n')
	if newline < 0 {
		return text
	}
	body = body[newline+1:]

	if closing := strings.LastIndex(body, "```"); closing >= 0 {
		body = body[:closing]
	}
	return strings.TrimSpace(body)
}

// ExtractJSON returns the JSON object or array embedded in text, located by
// the first opening delimiter and the last matching closing one.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')
	if objStart < 0 && arrStart < 0 {
		return "", fmt.Errorf("no JSON content found")
	}

	start, closer := objStart, byte('}')
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, closer = arrStart, byte(']')
	}

	text = text[start:]
	end := strings.LastIndexByte(text, closer)
	if end < 0 {
		return "", fmt.Errorf("no closing %q found", string(closer))
	}
	return text[:end+1], nil
}

// ParseJSON strips markdown fences from raw model output, extracts the JSON
// payload, and unmarshals it into T.
func ParseJSON[T any](raw string) (T, error) {
	var result T

	text, err := ExtractJSON(StripMarkdownFences(raw))
	if err != nil {
		return result, fmt.Errorf("%w (response length: %d)", err, len(raw))
	}

	if err := json.Unmarshal([]byte(text), &result); err != nil {
		preview := text
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		var zero T
		return zero, fmt.Errorf("invalid JSON: %w (text: %s)", err, preview)
	}
	return result, nil
}
