// Package llm wraps the hosted text-generation service and the tolerant
// extraction of structured data from its free-text output.
package llm

import (
	"encoding/json"
	"strings"
)

// ParseError describes model output that could not be decoded as the expected
// structure. RawResponse preserves the original text verbatim: it is the only
// forensic evidence when the service violates the expected contract.
type ParseError struct {
	Message     string
	RawResponse string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Payload returns the error as a structured analysis payload, mirroring the
// shape a successful parse would have produced.
func (e *ParseError) Payload() map[string]any {
	return map[string]any{
		"error":        e.Message,
		"raw_response": e.RawResponse,
	}
}

// Parse extracts the first JSON object or array embedded in text. Models
// routinely wrap their JSON in prose or markdown fences, so the scan is
// permissive: greedy from the first `{` or `[` to the matching last `}` or
// `]`, then a strict decode of that candidate. Parse never panics; malformed
// input yields a ParseError carrying the input unchanged.
func Parse(text string) (any, *ParseError) {
	candidate, ok := extractCandidate(text)
	if !ok {
		return nil, &ParseError{
			Message:     "no JSON object or array found in response",
			RawResponse: text,
		}
	}

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, &ParseError{
			Message:     "invalid JSON in response: " + err.Error(),
			RawResponse: text,
		}
	}
	return value, nil
}

// ParseObject is Parse restricted to JSON objects. A top-level array (or any
// other value) is treated as a contract violation and reported the same way
// as undecodable text.
func ParseObject(text string) (map[string]any, *ParseError) {
	value, perr := Parse(text)
	if perr != nil {
		return nil, perr
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &ParseError{
			Message:     "response JSON is not an object",
			RawResponse: text,
		}
	}
	return obj, nil
}

func extractCandidate(text string) (string, bool) {
	objStart, objEnd := strings.Index(text, "{"), strings.LastIndex(text, "}")
	arrStart, arrEnd := strings.Index(text, "["), strings.LastIndex(text, "]")

	objOK := objStart >= 0 && objEnd > objStart
	arrOK := arrStart >= 0 && arrEnd > arrStart

	switch {
	case objOK && (!arrOK || objStart <= arrStart):
		return text[objStart : objEnd+1], true
	case arrOK:
		return text[arrStart : arrEnd+1], true
	}
	return "", false
}
