package llm

import (
	"context"
	"errors"
)

// Prompt is the pair of messages sent for one completion.
type Prompt struct {
	System string
	User   string
}

// Completer performs a single completion attempt against a model backend.
// Retry policy lives in Caller, not in implementations.
type Completer interface {
	Complete(ctx context.Context, model string, prompt Prompt) (string, error)
}

// Settings holds the backend configuration for the real client.
type Settings struct {
	APIKey  string
	BaseURL string
}

// RateLimitError marks a failed attempt that was rejected for rate limiting.
// The Caller applies a linear wait for these instead of the exponential one.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string { return e.Err.Error() }

func (e *RateLimitError) Unwrap() error { return e.Err }

// IsRateLimit reports whether err carries a rate-limit signal.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
