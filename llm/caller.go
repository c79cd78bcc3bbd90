package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FailurePrefix tags Caller output that is an error description rather than
// model content. Callers branch on this prefix instead of an error value.
const FailurePrefix = "[ERROR]"

const (
	// DefaultMaxRetries counts total attempts, the first one included.
	DefaultMaxRetries = 4
	// DefaultTimeout bounds each network attempt, not the whole call.
	DefaultTimeout = 30 * time.Second

	baseBackoff   = 2 * time.Second
	rateLimitUnit = 5 * time.Second
)

// IsFailure reports whether text is a failure marker rather than content.
func IsFailure(text string) bool {
	return strings.HasPrefix(text, FailurePrefix)
}

// Caller invokes a Completer with retry and backoff. Ordinary failures wait
// on a doubling schedule (2s, 4s, 8s, ...); rate-limited attempts instead
// wait 5s*attempt, without resetting the doubling counter.
type Caller struct {
	completer  Completer
	maxRetries int
	timeout    time.Duration

	// sleep is swapped out in tests to observe the schedule.
	sleep func(time.Duration)
}

// NewCaller wraps completer. A nil completer means no credential was
// configured: every invocation fast-fails without network I/O.
func NewCaller(completer Completer, maxRetries int, timeout time.Duration) *Caller {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Caller{
		completer:  completer,
		maxRetries: maxRetries,
		timeout:    timeout,
		sleep:      time.Sleep,
	}
}

// Invoke requests one completion, retrying transient failures. It returns
// model text, or a FailurePrefix-tagged description once retries are
// exhausted. It never returns an error value; failures travel as text so
// stage agents convert them at their own boundary.
func (c *Caller) Invoke(ctx context.Context, model, system, user string) string {
	if c.completer == nil {
		return FailurePrefix + " api key not set; cannot call model"
	}

	prompt := Prompt{System: system, User: user}
	backoff := baseBackoff
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := c.completer.Complete(attemptCtx, model, prompt)
		cancel()
		if err == nil {
			return text
		}
		lastErr = err

		if attempt == c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		if IsRateLimit(err) {
			c.sleep(rateLimitUnit * time.Duration(attempt))
		} else {
			c.sleep(backoff)
			backoff *= 2
		}
	}

	return fmt.Sprintf("%s model call failed after %d attempts: %v", FailurePrefix, c.maxRetries, lastErr)
}
