package agent

import (
	"log/slog"
	"time"

	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
)

// DefaultListenDelay keeps the recognizer from hearing the tail of the agent's own voice.
const DefaultListenDelay = 500 * time.Millisecond

// Option defines a functional option for configuring the Agent.
type Option func(*Agent)

// WithLogger sets a custom structured logger for the agent and its engine.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
		a.engineOpts = append(a.engineOpts, dialogue.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Agent) {
		a.hooks = hooks
		a.engineOpts = append(a.engineOpts, dialogue.WithLifecycleHooks(hooks))
	}
}

// WithClock sets the time source used by the engine to resolve dates.
func WithClock(clock func() time.Time) Option {
	return func(a *Agent) {
		a.engineOpts = append(a.engineOpts, dialogue.WithClock(clock))
	}
}

// WithListenDelay sets the pause between the end of speech and listening.
func WithListenDelay(d time.Duration) Option {
	return func(a *Agent) {
		a.listenDelay = d
	}
}

// WithRetryPolicy sets how recognition errors are retried.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(a *Agent) {
		a.retry = p
	}
}

// WithMaxUtterance sets the largest utterance in bytes that Sanitize
// accepts. Zero disables the limit.
func WithMaxUtterance(n int) Option {
	return func(a *Agent) {
		a.maxInput = n
	}
}
