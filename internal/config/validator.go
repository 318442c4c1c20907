package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration for consistency. It returns
// ValidationErrors listing every problem found, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field: "log.level", Value: c.Log.Level,
			Message: "must be one of debug, info, warn, error",
		})
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field: "log.format", Value: c.Log.Format,
			Message: "must be one of auto, text, json",
		})
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field: "server.port", Value: c.Server.Port,
			Message: "must be between 1 and 65535",
		})
	}

	switch c.Model.Provider {
	case "gemini", "static":
	default:
		errs = append(errs, ValidationError{
			Field: "model.provider", Value: c.Model.Provider,
			Message: "must be one of gemini, static",
		})
	}
	if c.Model.Provider == "gemini" && c.Model.APIKey == "" {
		errs = append(errs, ValidationError{
			Field:   "model.api_key",
			Message: "required for the gemini provider (set REQQA_MODEL_API_KEY)",
		})
	}
	if _, err := time.ParseDuration(c.Model.Timeout); err != nil {
		errs = append(errs, ValidationError{
			Field: "model.timeout", Value: c.Model.Timeout,
			Message: "invalid duration",
		})
	}
	if c.Model.MaxRetries < 1 {
		errs = append(errs, ValidationError{
			Field: "model.max_retries", Value: c.Model.MaxRetries,
			Message: "must be >= 1",
		})
	}

	if c.Store.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "store.path",
			Message: "required",
		})
	}

	switch c.Analysis.Mode {
	case "context", "project":
	default:
		errs = append(errs, ValidationError{
			Field: "analysis.mode", Value: c.Analysis.Mode,
			Message: "must be one of context, project",
		})
	}
	if c.Analysis.MaxSuggestions < 1 {
		errs = append(errs, ValidationError{
			Field: "analysis.max_suggestions", Value: c.Analysis.MaxSuggestions,
			Message: "must be >= 1",
		})
	}
	if c.Analysis.Concurrency < 1 {
		errs = append(errs, ValidationError{
			Field: "analysis.concurrency", Value: c.Analysis.Concurrency,
			Message: "must be >= 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ModelTimeout returns the parsed model call timeout, defaulting to 60s.
func (c *Config) ModelTimeout() time.Duration {
	d, err := time.ParseDuration(c.Model.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}
