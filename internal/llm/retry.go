package llm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

// RetryPolicy defines retry behavior for model calls.
type RetryPolicy struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64 // 0.0 to 1.0
	Multiplier   float64 // Exponential factor
}

// DefaultRetryPolicy returns a default retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		BaseDelay:    time.Second,
		MaxDelay:     15 * time.Second,
		JitterFactor: 0.2,
		Multiplier:   2.0,
	}
}

// RetryExhaustedError indicates all attempts failed.
type RetryExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.LastErr
}

// Execute runs fn with bounded retry. Non-retryable errors and context
// cancellation return immediately.
func (p RetryPolicy) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !core.IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}

	return &RetryExhaustedError{Attempts: attempts, LastErr: lastErr}
}

// delay computes the backoff for a given attempt, with jitter.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if max := float64(p.MaxDelay); p.MaxDelay > 0 && d > max {
		d = max
	}
	if p.JitterFactor > 0 {
		jitter := d * p.JitterFactor * (2*rand.Float64() - 1)
		d += jitter
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
