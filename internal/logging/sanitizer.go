package logging

import "regexp"

// Sanitizer redacts credentials from log output. The Gemini API key travels
// through configuration and error messages, so every log line passes through
// here before it is written.
type Sanitizer struct {
	patterns []*regexp.Regexp
	redacted string
}

// NewSanitizer creates a sanitizer with default patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultPatterns(),
		redacted: "[REDACTED]",
	}
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// Google AI
		`AIza[a-zA-Z0-9_-]{35}`,
		// OpenAI
		`sk-[A-Za-z0-9]{20,}`,
		// Anthropic
		`sk-ant-[a-zA-Z0-9-]{40,}`,
		// Bearer tokens
		`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`,
		// key=... query parameters (the Gemini endpoint carries the key in the URL)
		`(?i)[?&]key=[a-zA-Z0-9_-]{20,}`,
		// Generic API keys, secrets, and tokens
		`(?i)api[_-]?key["'\s:=]+[a-zA-Z0-9_-]{20,}`,
		`(?i)secret["'\s:=]+[a-zA-Z0-9_-]{20,}`,
		`(?i)token["'\s:=]+[a-zA-Z0-9_-]{20,}`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Sanitize redacts sensitive information from a string.
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllString(result, s.redacted)
	}
	return result
}

// AddPattern adds a custom pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, re)
	return nil
}
