package logging

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter forwards errors to Sentry. The zero value, and a Reporter built
// without a DSN, discards everything.
type Reporter struct {
	enabled bool
}

// NewReporter initializes the Sentry client when dsn is set.
func NewReporter(dsn, environment, release string) (*Reporter, error) {
	if dsn == "" {
		return &Reporter{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return nil, err
	}
	return &Reporter{enabled: true}, nil
}

// Enabled reports whether errors are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Capture sends err with the given tags.
func (r *Reporter) Capture(_ context.Context, err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits for buffered events to be delivered.
func (r *Reporter) Flush() {
	if r.Enabled() {
		sentry.Flush(2 * time.Second)
	}
}
