package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/screener/pkg/domain"
)

// LoggingHooks logs each lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "turn",
				"type", string(e.Type),
				"step", e.Step.String(),
				"duration", e.Duration,
			)
		},
		OnComplete: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "conversation_complete", "step", e.Step.String())
		},
		OnRecognitionFailure: func(ctx context.Context, e *domain.FailureEvent) {
			level := slog.LevelWarn
			if e.Fatal {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "recognition_failure", "attempt", e.Attempt, "fatal", e.Fatal, "error", e.Err)
		},
	}
}

// Combine returns hooks that call each of the given hooks in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var combined domain.LifecycleHooks
	for _, h := range all {
		combined.OnTurn = chainTurn(combined.OnTurn, h.OnTurn)
		combined.OnComplete = chainTurn(combined.OnComplete, h.OnComplete)
		combined.OnRecognitionFailure = chainFailure(combined.OnRecognitionFailure, h.OnRecognitionFailure)
	}
	return combined
}

func chainTurn(a, b func(context.Context, *domain.TurnEvent)) func(context.Context, *domain.TurnEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.TurnEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainFailure(a, b func(context.Context, *domain.FailureEvent)) func(context.Context, *domain.FailureEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.FailureEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
