package agent_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/agent"
	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var job = domain.JobContext{Title: "Frontend Developer", Company: "Acme"}

type harness struct {
	agent *agent.Agent
	rec   *fakeRecognizer
	synth *fakeSynthesizer
	obs   *recorder
}

func newHarness(t *testing.T, opts ...agent.Option) *harness {
	t.Helper()
	h := &harness{rec: newFakeRecognizer(), synth: newFakeSynthesizer(), obs: &recorder{}}
	base := []agent.Option{
		agent.WithListenDelay(time.Millisecond),
		agent.WithRetryPolicy(agent.RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, Multiplier: 2}),
		agent.WithClock(func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }),
	}
	h.agent = agent.New(job, h.rec, h.synth, append(base, opts...)...)
	h.agent.OnUpdate(h.obs.record)
	t.Cleanup(h.agent.Stop)
	return h
}

func TestAgent_FullConversation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)
	assert.True(t, h.agent.Snapshot().Listening)

	answers := []string{"yes", "1 month", "8 lakh / 12 lakh", "Friday morning", "yes"}
	for i, answer := range answers {
		h.rec.say(answer)
		if i < len(answers)-1 {
			h.rec.waitStart(t)
		}
	}
	h.rec.assertNoStart(t)

	snap := h.agent.Snapshot()
	assert.True(t, snap.Completed)
	assert.False(t, snap.Active)
	assert.False(t, snap.Listening)
	assert.Len(t, snap.Transcript, 2*len(answers)+1)

	last := h.obs.last()
	assert.True(t, last.Completed)
	assert.Equal(t, map[string]any{domain.FieldConfirmed: true}, last.ExtractedData)

	questions := dialogue.Questions(job)
	spoken := h.synth.said()
	require.Len(t, spoken, 5, "closing message is not spoken")
	assert.Equal(t, questions, spoken[:4])
	assert.Equal(t, "We've scheduled your interview on Friday, October 16, 2026 at 10:00 AM. Is that correct?", spoken[4])

	collected := h.agent.Collected()
	for _, key := range []string{domain.FieldInterested, domain.FieldNoticePeriod, domain.FieldCurrentCTC, domain.FieldExpectedCTC, domain.FieldInterviewDate, domain.FieldConfirmed} {
		assert.NotEqual(t, domain.Unclear, collected[key], key)
	}
}

func TestAgent_ClarificationIsSpoken(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.agent.Start(context.Background()))
	h.rec.waitStart(t)
	h.rec.say("yes")
	h.rec.waitStart(t)

	h.rec.say("soon")
	h.rec.waitStart(t)

	spoken := h.synth.said()
	assert.Equal(t, dialogue.ClarificationLine+" "+dialogue.Questions(job)[1], spoken[len(spoken)-1])
	assert.Equal(t, domain.StepNoticePeriod, h.agent.Snapshot().Step)
	assert.Equal(t, map[string]any{domain.FieldNoticePeriod: domain.Unclear}, h.obs.last().ExtractedData)
}

func TestAgent_SubmitUtteranceIgnoresBlankAndInactive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.agent.SubmitUtterance(ctx, "yes"))
	assert.Equal(t, 0, h.obs.count(), "not started yet")
	assert.Empty(t, h.agent.Snapshot().Transcript)

	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)
	before := h.obs.count()

	require.NoError(t, h.agent.SubmitUtterance(ctx, "   "))
	assert.Equal(t, before, h.obs.count())
	assert.Equal(t, domain.StepInterest, h.agent.Snapshot().Step)
}

func TestAgent_ManualInputWhenRecognitionNeverFires(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)
	require.True(t, h.agent.Snapshot().Listening)

	// The recognizer stays silent; typed text still drives the call.
	require.NoError(t, h.agent.SubmitUtterance(ctx, "  absolutely  "))
	assert.Equal(t, domain.StepNoticePeriod, h.agent.Snapshot().Step)
	assert.Equal(t, "User: absolutely", h.agent.Snapshot().Transcript[1])
	h.rec.waitStart(t)
}

func TestAgent_StopIsSafeAnywhere(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		h := newHarness(t)
		h.agent.Stop()
		h.agent.Stop()

		snap := h.agent.Snapshot()
		assert.False(t, snap.Active)
		assert.False(t, snap.Completed)
		assert.Equal(t, 0, h.obs.count())
	})

	t.Run("after completion", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.agent.Start(context.Background()))
		for _, answer := range []string{"yes", "1 month", "8 lakh", "Friday", "yes"} {
			h.rec.waitStart(t)
			h.rec.say(answer)
		}
		before := h.obs.count()

		h.agent.Stop()
		h.agent.Stop()
		assert.Equal(t, before, h.obs.count())
		assert.True(t, h.agent.Snapshot().Completed)

		require.NoError(t, h.agent.Start(context.Background()))
		assert.Len(t, h.synth.said(), 5, "start after completion is a no-op")
	})

	t.Run("while listening", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.agent.Start(context.Background()))
		h.rec.waitStart(t)

		h.agent.Stop()

		snap := h.agent.Snapshot()
		assert.False(t, snap.Active)
		assert.False(t, snap.Listening)
		assert.True(t, snap.Completed)
		assert.False(t, h.rec.isListening())

		h.rec.say("yes")
		assert.Equal(t, domain.StepInterest, h.agent.Snapshot().Step, "late results are ignored")
	})
}

func TestAgent_StopCancelsSpeech(t *testing.T) {
	h := newHarness(t)
	h.synth.block = true

	done := make(chan error, 1)
	go func() { done <- h.agent.Start(context.Background()) }()

	select {
	case <-h.synth.speaking:
	case <-time.After(time.Second):
		t.Fatal("prompt was not spoken")
	}
	h.agent.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
	h.rec.assertNoStart(t)
	assert.Positive(t, h.synth.cancels)
}

func TestAgent_ContextCancellationStops(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)
	cancel()

	require.Eventually(t, func() bool { return !h.agent.Snapshot().Active }, time.Second, time.Millisecond)
	assert.False(t, h.rec.isListening())
}

func TestAgent_StartTwiceIsNoop(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.agent.Start(context.Background()))
	require.NoError(t, h.agent.Start(context.Background()))

	assert.Len(t, h.synth.said(), 1)
	assert.Len(t, h.agent.Snapshot().Transcript, 1)
}

func TestAgent_RecognitionRetriesThenFails(t *testing.T) {
	var mu sync.Mutex
	var events []domain.FailureEvent
	h := newHarness(t, agent.WithLifecycleHooks(domain.LifecycleHooks{
		OnRecognitionFailure: func(_ context.Context, e *domain.FailureEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, *e)
		},
	}))
	boom := errors.New("no-speech")

	require.NoError(t, h.agent.Start(context.Background()))
	h.rec.waitStart(t)

	for range 3 {
		h.rec.fail(boom)
		h.rec.waitStart(t)
		assert.False(t, h.agent.Snapshot().Failed)
	}
	h.rec.fail(boom)
	h.rec.assertNoStart(t)

	snap := h.agent.Snapshot()
	assert.True(t, snap.Failed)
	assert.Equal(t, "no-speech", snap.Error)
	assert.False(t, snap.Active)
	assert.True(t, h.obs.last().Failed)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 4)
	assert.Equal(t, 4, events[3].Attempt)
	assert.True(t, events[3].Fatal)
	assert.False(t, events[2].Fatal)
}

func TestAgent_SuccessResetsFailureCount(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("network")

	require.NoError(t, h.agent.Start(context.Background()))
	h.rec.waitStart(t)
	for range 3 {
		h.rec.fail(boom)
		h.rec.waitStart(t)
	}
	h.rec.say("yes")
	h.rec.waitStart(t)
	for range 3 {
		h.rec.fail(boom)
		h.rec.waitStart(t)
	}

	assert.False(t, h.agent.Snapshot().Failed)
	assert.True(t, h.agent.Snapshot().Active)
}

func TestAgent_ClosedInputFailsImmediately(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.agent.Start(context.Background()))
	h.rec.waitStart(t)

	h.rec.fail(ports.ErrRecognizerClosed)
	h.rec.assertNoStart(t)

	assert.True(t, h.agent.Snapshot().Failed)
}

func TestAgent_RecognizerStartError(t *testing.T) {
	h := newHarness(t)
	h.rec.startErr = errors.New("microphone busy")

	require.NoError(t, h.agent.Start(context.Background()))

	require.Eventually(t, func() bool { return h.agent.Snapshot().Failed }, time.Second, time.Millisecond)
	assert.Equal(t, "microphone busy", h.agent.Snapshot().Error)
}

func TestAgent_Reset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)
	h.rec.say("yes")
	h.rec.waitStart(t)
	firstSession := h.agent.SessionID()

	next := domain.JobContext{Title: "Data Engineer", Company: "Globex"}
	h.agent.Reset(&next)

	snap := h.obs.last()
	assert.Empty(t, snap.Transcript)
	assert.Equal(t, domain.StepInterest, snap.Step)
	assert.False(t, snap.Completed)
	assert.NotEqual(t, firstSession, h.agent.SessionID())

	require.NoError(t, h.agent.Start(ctx))
	spoken := h.synth.said()
	assert.Contains(t, spoken[len(spoken)-1], "Globex regarding the Data Engineer")

	h.agent.Reset(nil)
	require.NoError(t, h.agent.Start(ctx))
	spoken = h.synth.said()
	assert.Contains(t, spoken[len(spoken)-1], "Globex")
}

func TestAgent_StartAfterStopResumes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)
	h.rec.say("yes")
	h.rec.waitStart(t)
	h.agent.Stop()

	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)

	snap := h.agent.Snapshot()
	assert.True(t, snap.Active)
	assert.False(t, snap.Completed)
	assert.Equal(t, domain.StepNoticePeriod, snap.Step)
	spoken := h.synth.said()
	assert.Equal(t, dialogue.Questions(job)[1], spoken[len(spoken)-1])
}

func TestFanout(t *testing.T) {
	var a, b int
	fn := agent.Fanout(func(domain.Update) { a++ }, nil, func(domain.Update) { b++ })
	fn(domain.Update{})
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestAgent_OversizedUtteranceIsRetried(t *testing.T) {
	h := newHarness(t, agent.WithMaxUtterance(16))
	ctx := context.Background()

	require.NoError(t, h.agent.Start(ctx))
	h.rec.waitStart(t)

	h.rec.say("yes, I would really love to hear more about it")
	h.rec.waitStart(t)
	assert.Equal(t, domain.StepInterest, h.agent.Snapshot().Step)
	assert.False(t, h.agent.Snapshot().Failed)

	err := h.agent.SubmitUtterance(ctx, "yes\x00 please, tell me much more")
	assert.ErrorIs(t, err, agent.ErrUtteranceTooLarge)

	h.rec.say("yes\x07")
	h.rec.waitStart(t)
	snap := h.agent.Snapshot()
	assert.Equal(t, domain.StepNoticePeriod, snap.Step)
	assert.Equal(t, domain.Line(domain.SpeakerUser, "yes"), snap.Transcript[1])
}
