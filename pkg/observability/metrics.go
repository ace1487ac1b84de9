package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the screening collectors.
type Metrics struct {
	Turns             *prometheus.CounterVec
	Completed         prometheus.Counter
	RecognitionErrors prometheus.Counter
	SessionsFailed    prometheus.Counter
	TurnDuration      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_turns_total",
				Help: "Total number of processed utterances",
			},
			[]string{"step", "outcome"},
		),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "screener_conversations_completed_total",
			Help: "Total number of conversations that reached the closing message",
		}),
		RecognitionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "screener_recognition_errors_total",
			Help: "Total number of failed listening windows",
		}),
		SessionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "screener_sessions_failed_total",
			Help: "Total number of sessions abandoned after recognition errors",
		}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "screener_turn_duration_seconds",
			Help:    "Time spent extracting and advancing per utterance",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Turns, m.Completed, m.RecognitionErrors, m.SessionsFailed, m.TurnDuration)
	}
	return m
}

// Hooks records metrics for every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			outcome := "accepted"
			if e.Type == domain.EventTurnClarified {
				outcome = "clarified"
			}
			m.Turns.WithLabelValues(e.Step.String(), outcome).Inc()
			m.TurnDuration.Observe(e.Duration.Seconds())
		},
		OnComplete: func(context.Context, *domain.TurnEvent) {
			m.Completed.Inc()
		},
		OnRecognitionFailure: func(_ context.Context, e *domain.FailureEvent) {
			m.RecognitionErrors.Inc()
			if e.Fatal {
				m.SessionsFailed.Inc()
			}
		},
	}
}

// Serve exposes gatherer on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
