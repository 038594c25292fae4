package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseObject cleans and unmarshals a JSON object from an LLM response,
// tolerating surrounding markdown or extra text.
func ParseObject[T any](response string) (T, error) {
	var zero T

	jsonStr, ok := slice(response, '{', '}')
	if !ok {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}
	return result, nil
}

// ParseArray cleans and unmarshals a JSON array of T. Markdown fences and
// "JSON:"-style prefixes are stripped; a bare object is accepted as a
// one-element array.
func ParseArray[T any](response string) ([]T, error) {
	clean := stripFences(response)
	for _, prefix := range []string{"JSON:", "OUTPUT:"} {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(clean)), prefix) {
			clean = strings.TrimSpace(clean)[len(prefix):]
		}
	}

	if jsonStr, ok := slice(clean, '[', ']'); ok {
		var result []T
		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON array: %w\nData: %s", err, jsonStr)
		}
		return result, nil
	}

	// Some models emit a single object instead of a one-element array.
	one, err := ParseObject[T](clean)
	if err != nil {
		return nil, fmt.Errorf("no JSON array found in response")
	}
	return []T{one}, nil
}

func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// slice returns the substring from the first opening delimiter to the last
// closing delimiter, inclusive.
func slice(s string, opening, closing byte) (string, bool) {
	start := strings.IndexByte(s, opening)
	end := strings.LastIndexByte(s, closing)
	if start == -1 || end == -1 || start >= end {
		return "", false
	}
	return s[start : end+1], true
}
