package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a model reply that did not contain usable JSON. The
// raw content is kept for logging, never for the client response.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StripFences removes a markdown code fence around the model's JSON
// payload. ```json fences win over bare ``` fences; content without
// fences passes through untouched.
func StripFences(content string) string {
	if strings.Contains(content, "```json") {
		parts := strings.SplitN(content, "```json", 2)
		return strings.TrimSpace(strings.SplitN(parts[1], "```", 2)[0])
	}
	if strings.Contains(content, "```") {
		parts := strings.SplitN(content, "```", 3)
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	return content
}

// ParseRecommendations extracts the recommendation array from a raw model
// reply
func ParseRecommendations(content string) (json.RawMessage, error) {
	text := StripFences(content)

	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &ParseError{Raw: content, Err: err}
	}
	return parsed, nil
}
