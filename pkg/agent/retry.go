package agent

import (
	"math"
	"time"
)

// RetryPolicy bounds how often listening is reopened after recognition errors.
type RetryPolicy struct {
	// MaxAttempts is the number of consecutive failures that are retried.
	// The next failure is fatal. Zero or less retries forever.
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryPolicy waits 1s after the first failure and doubles up to 8s,
// giving up after five retries.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     8 * time.Second,
		Multiplier:   2,
	}
}

// Allows reports whether the attempt-th consecutive failure may be retried.
func (p RetryPolicy) Allows(attempt int) bool {
	return p.MaxAttempts <= 0 || attempt <= p.MaxAttempts
}

// Delay returns the wait before retrying the attempt-th consecutive failure.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	multiplier := math.Max(p.Multiplier, 1)
	delay := float64(p.InitialDelay) * math.Pow(multiplier, float64(attempt-1))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}
