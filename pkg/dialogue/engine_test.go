package dialogue_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var job = domain.JobContext{Title: "Frontend Developer", Company: "Acme"}

// Thursday.
func fixedClock() time.Time {
	return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
}

func newEngine(opts ...dialogue.Option) *dialogue.Engine {
	return dialogue.New(job, append([]dialogue.Option{dialogue.WithClock(fixedClock)}, opts...)...)
}

func TestEngine_Begin(t *testing.T) {
	e := newEngine()

	prompt := e.Begin()
	assert.Equal(t, "Hello, this is Acme regarding the Frontend Developer opportunity. Are you interested in this role?", prompt)
	assert.Equal(t, []string{"Agent: " + prompt}, e.State().Transcript)

	// A second Begin does not record the prompt twice.
	e.Begin()
	assert.Len(t, e.State().Transcript, 1)
}

func TestEngine_FullConversation(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.Begin()

	answers := []string{"yes", "1 month", "8 lakh / 12 lakh", "Friday morning", "yes"}
	var res dialogue.Result
	var err error
	for i, answer := range answers {
		res, err = e.Process(ctx, answer)
		require.NoError(t, err)
		assert.False(t, res.Clarification, "turn %d", i)
		if i < len(answers)-1 {
			assert.False(t, res.Complete, "turn %d", i)
		}
	}

	assert.True(t, res.Complete)
	assert.Equal(t, dialogue.ClosingMessage, res.NextPrompt)

	state := e.State()
	assert.Equal(t, map[string]any{
		domain.FieldInterested:    true,
		domain.FieldNoticePeriod:  "1 month",
		domain.FieldCurrentCTC:    "8 lakh",
		domain.FieldExpectedCTC:   "12 lakh",
		domain.FieldInterviewDate: "Friday, October 16, 2026 at 10:00 AM",
		domain.FieldConfirmed:     true,
	}, state.CollectedData)
	assert.Len(t, state.Transcript, 2*len(answers)+1)
	assert.True(t, e.Complete())
}

func TestEngine_PromptSequence(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	questions := dialogue.Questions(job)

	res, err := e.Process(ctx, "sure")
	require.NoError(t, err)
	assert.Equal(t, questions[1], res.NextPrompt)
	assert.Equal(t, map[string]any{domain.FieldInterested: true}, res.Extracted)

	res, _ = e.Process(ctx, "2 weeks")
	assert.Equal(t, questions[2], res.NextPrompt)

	res, _ = e.Process(ctx, "10 lakh and 15 lakh")
	assert.Equal(t, questions[3], res.NextPrompt)

	res, _ = e.Process(ctx, "Monday afternoon works")
	assert.Equal(t, "We've scheduled your interview on Monday, October 19, 2026 at 2:00 PM. Is that correct?", res.NextPrompt)
	assert.Equal(t, domain.StepConfirmation, e.State().CurrentStep)
}

func TestEngine_Clarification(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		prepare []string
		unclear string
	}{
		{"notice period", []string{"yes"}, "soon"},
		{"compensation", []string{"yes", "2 weeks"}, "I'd rather not say"},
		{"availability", []string{"yes", "2 weeks", "10 lakh, 15 lakh"}, "whenever"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine()
			e.Begin()
			for _, answer := range tc.prepare {
				_, err := e.Process(ctx, answer)
				require.NoError(t, err)
			}
			before := e.State()
			prompt := e.CurrentPrompt()

			res, err := e.Process(ctx, tc.unclear)
			require.NoError(t, err)

			assert.True(t, res.Clarification)
			assert.False(t, res.Complete)
			assert.Equal(t, prompt, res.NextPrompt)
			after := e.State()
			assert.Equal(t, before.CurrentStep, after.CurrentStep)
			assert.Equal(t, []string{"User: " + tc.unclear, "Agent: " + dialogue.ClarificationLine}, after.Transcript[len(before.Transcript):])
		})
	}
}

func TestEngine_CompensationPartialIsAccepted(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	_, _ = e.Process(ctx, "yes")
	_, _ = e.Process(ctx, "2 weeks")

	res, err := e.Process(ctx, "I make 12 lakh")
	require.NoError(t, err)

	assert.False(t, res.Clarification)
	assert.Equal(t, domain.StepAvailability, e.State().CurrentStep)
	assert.Equal(t, domain.Unclear, res.Extracted[domain.FieldExpectedCTC])
}

func TestEngine_DefaultsNeverClarify(t *testing.T) {
	ctx := context.Background()
	e := newEngine()

	res, err := e.Process(ctx, "maybe possibly")
	require.NoError(t, err)
	assert.False(t, res.Clarification)
	assert.Equal(t, false, res.Extracted[domain.FieldInterested])

	for _, answer := range []string{"2 weeks", "10 lakh", "Tuesday"} {
		_, err := e.Process(ctx, answer)
		require.NoError(t, err)
	}

	res, err = e.Process(ctx, "hmm I guess")
	require.NoError(t, err)
	assert.False(t, res.Clarification)
	assert.True(t, res.Complete)
	assert.Equal(t, true, res.Extracted[domain.FieldConfirmed])
}

func TestEngine_ProcessAfterComplete(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	for _, answer := range []string{"yes", "1 month", "8 lakh", "Friday", "yes"} {
		_, err := e.Process(ctx, answer)
		require.NoError(t, err)
	}
	before := e.State()

	res, err := e.Process(ctx, "one more thing")
	assert.ErrorIs(t, err, domain.ErrConversationComplete)
	assert.True(t, res.Complete)
	assert.Equal(t, before, e.State())
}

func TestEngine_Reset(t *testing.T) {
	ctx := context.Background()
	e := newEngine()
	e.Begin()
	_, _ = e.Process(ctx, "yes")
	_, _ = e.Process(ctx, "3 months")

	e.Reset()

	state := e.State()
	assert.Equal(t, domain.StepInterest, state.CurrentStep)
	assert.Empty(t, state.CollectedData)
	assert.Empty(t, state.Transcript)
	assert.Equal(t, job, state.Job)
}

func TestEngine_StateIsACopy(t *testing.T) {
	e := newEngine()
	e.Begin()

	state := e.State()
	state.Transcript[0] = "tampered"
	state.CollectedData["x"] = 1

	assert.NotEqual(t, "tampered", e.State().Transcript[0])
	assert.NotContains(t, e.State().CollectedData, "x")
}

func TestEngine_LifecycleHooks(t *testing.T) {
	ctx := context.Background()
	var turns []domain.EventType
	var completed int

	e := newEngine(dialogue.WithLifecycleHooks(domain.LifecycleHooks{
		OnTurn: func(_ context.Context, ev *domain.TurnEvent) {
			turns = append(turns, ev.Type)
		},
		OnComplete: func(_ context.Context, ev *domain.TurnEvent) {
			completed++
			assert.Equal(t, domain.StepConfirmation, ev.Step)
		},
	}))

	for _, answer := range []string{"yes", "soon", "1 month", "8 lakh", "Friday", "yes"} {
		_, err := e.Process(ctx, answer)
		require.NoError(t, err)
	}

	assert.Equal(t, []domain.EventType{
		domain.EventTurnAccepted,
		domain.EventTurnClarified,
		domain.EventTurnAccepted,
		domain.EventTurnAccepted,
		domain.EventTurnAccepted,
		domain.EventTurnAccepted,
	}, turns)
	assert.Equal(t, 1, completed)
}

func TestConfirmationPrompt_Fallback(t *testing.T) {
	assert.Equal(t, "We've scheduled your interview on the requested date. Is that correct?", dialogue.ConfirmationPrompt(map[string]any{}))
}

func TestFieldsAndClarifies_MatchEngine(t *testing.T) {
	ctx := context.Background()
	good := []string{"yes", "1 month", "8 lakh / 12 lakh", "Friday morning", "yes"}

	for step := domain.StepInterest; step <= domain.StepConfirmation; step++ {
		t.Run(step.String(), func(t *testing.T) {
			e := newEngine()
			for _, answer := range good[:step] {
				_, err := e.Process(ctx, answer)
				require.NoError(t, err)
			}

			res, err := e.Process(ctx, "hmm")
			require.NoError(t, err)
			assert.Equal(t, dialogue.Clarifies(step), res.Clarification)

			keys := make([]string, 0, len(res.Extracted))
			for k := range res.Extracted {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, dialogue.Fields(step), keys)
		})
	}
	assert.Nil(t, dialogue.Fields(domain.StepConfirmation+1))
}
