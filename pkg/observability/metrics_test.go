package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsConversation(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := observability.NewMetrics(reg)

	eng := dialogue.New(domain.JobContext{Title: "Frontend Developer", Company: "Acme"},
		dialogue.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()
	for _, answer := range []string{"yes", "soon", "2 weeks", "10 lakh", "Monday", "yes"} {
		_, err := eng.Process(ctx, answer)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Turns.WithLabelValues("notice_period", "clarified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Turns.WithLabelValues("notice_period", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Completed))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TurnDuration, "screener_turn_duration_seconds"))

	expected := `
# HELP screener_conversations_completed_total Total number of conversations that reached the closing message
# TYPE screener_conversations_completed_total counter
screener_conversations_completed_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "screener_conversations_completed_total"))
}

func TestMetrics_RecognitionFailures(t *testing.T) {
	m := observability.NewMetrics(nil)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRecognitionFailure(ctx, &domain.FailureEvent{Err: errors.New("no-speech"), Attempt: 1})
	hooks.OnRecognitionFailure(ctx, &domain.FailureEvent{Err: errors.New("no-speech"), Attempt: 2, Fatal: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecognitionErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsFailed))
}

func TestCombine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := observability.NewMetrics(nil)

	calls := 0
	extra := domain.LifecycleHooks{OnTurn: func(context.Context, *domain.TurnEvent) { calls++ }}
	hooks := observability.Combine(observability.LoggingHooks(logger), m.Hooks(), extra, domain.LifecycleHooks{})

	hooks.OnTurn(context.Background(), &domain.TurnEvent{Type: domain.EventTurnAccepted, Step: domain.StepInterest, Duration: time.Millisecond})
	hooks.OnRecognitionFailure(context.Background(), &domain.FailureEvent{Err: errors.New("network"), Attempt: 1, Fatal: true})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Turns.WithLabelValues("interest", "accepted")))
	assert.Contains(t, buf.String(), "msg=turn")
	assert.Contains(t, buf.String(), "level=ERROR msg=recognition_failure")
}

func TestCombine_Empty(t *testing.T) {
	hooks := observability.Combine()
	assert.Nil(t, hooks.OnTurn)
	assert.Nil(t, hooks.OnComplete)
	assert.Nil(t, hooks.OnRecognitionFailure)
}
