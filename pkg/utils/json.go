package utils

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a text holds no brace-delimited region.
var ErrNoJSONObject = errors.New("no JSON object found in text")

// ExtractJSONObject returns the substring between the first '{' and the last '}'.
// LLM responses often wrap the payload in prose or code fences; the region is
// not validated here.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}
