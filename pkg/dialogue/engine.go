package dialogue

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/extract"
)

// Engine drives one screening conversation.
type Engine struct {
	state     *domain.DialogueState
	questions []string
	clock     func() time.Time
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Result is the outcome of processing one utterance.
type Result struct {
	NextPrompt string
	Complete   bool

	// Clarification is set when the answer was unclear and the question repeats.
	Clarification bool

	// Extracted is only what this utterance produced.
	Extracted map[string]any
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithClock sets the time source used to resolve weekday answers.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine positioned at the first question for job.
func New(job domain.JobContext, opts ...Option) *Engine {
	e := &Engine{
		state:     domain.NewDialogueState(job),
		questions: Questions(job),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Job returns the job context the engine was created with.
func (e *Engine) Job() domain.JobContext {
	return e.state.Job
}

// State returns a copy of the current dialogue state.
func (e *Engine) State() domain.DialogueState {
	return e.state.Clone()
}

// Complete reports whether the closing message has been reached.
func (e *Engine) Complete() bool {
	return e.state.CurrentStep.Closed()
}

// CurrentPrompt returns what the agent should be asking right now.
func (e *Engine) CurrentPrompt() string {
	return e.promptFor(e.state.CurrentStep)
}

// Begin records the opening agent line if nothing has been said yet and
// returns the current prompt either way.
func (e *Engine) Begin() string {
	prompt := e.CurrentPrompt()
	if len(e.state.Transcript) == 0 {
		e.say(prompt)
	}
	return prompt
}

// Reset rewinds to the first question and clears collected data and transcript.
// The job context is kept.
func (e *Engine) Reset() {
	e.state = domain.NewDialogueState(e.state.Job)
}

// Process consumes one utterance and moves the conversation forward.
// It returns domain.ErrConversationComplete once the call is closed.
func (e *Engine) Process(ctx context.Context, utterance string) (Result, error) {
	if e.Complete() {
		return Result{NextPrompt: ClosingMessage, Complete: true}, domain.ErrConversationComplete
	}

	started := e.clock()
	step := e.state.CurrentStep
	e.state.Transcript = append(e.state.Transcript, domain.Line(domain.SpeakerUser, utterance))

	delta := e.extract(step, utterance)
	maps.Copy(e.state.CollectedData, delta)

	if needsClarification(step, delta) {
		e.say(ClarificationLine)
		e.logger.Debug("answer unclear", "step", step.String())
		e.emit(ctx, e.hooks.OnTurn, domain.EventTurnClarified, step, delta, started)
		return Result{
			NextPrompt:    e.promptFor(step),
			Clarification: true,
			Extracted:     delta,
		}, nil
	}

	e.state.CurrentStep++
	next := e.promptFor(e.state.CurrentStep)
	e.say(next)

	complete := e.Complete()
	e.logger.Debug("answer accepted", "step", step.String(), "next", e.state.CurrentStep.String(), "complete", complete)
	e.emit(ctx, e.hooks.OnTurn, domain.EventTurnAccepted, step, delta, started)
	if complete {
		e.emit(ctx, e.hooks.OnComplete, domain.EventCompleted, step, delta, started)
	}

	return Result{NextPrompt: next, Complete: complete, Extracted: delta}, nil
}

func (e *Engine) say(text string) {
	e.state.Transcript = append(e.state.Transcript, domain.Line(domain.SpeakerAgent, text))
}

func (e *Engine) promptFor(step domain.Step) string {
	switch {
	case int(step) < len(e.questions):
		return e.questions[step]
	case step == domain.StepConfirmation:
		return ConfirmationPrompt(e.state.CollectedData)
	default:
		return ClosingMessage
	}
}

func (e *Engine) extract(step domain.Step, text string) map[string]any {
	switch step {
	case domain.StepInterest:
		return map[string]any{domain.FieldInterested: extract.Interest(text)}
	case domain.StepNoticePeriod:
		return map[string]any{domain.FieldNoticePeriod: extract.NoticePeriod(text)}
	case domain.StepCompensation:
		return extract.ExtractCompensation(text).Fields()
	case domain.StepAvailability:
		return map[string]any{domain.FieldInterviewDate: extract.InterviewDate(text, e.clock())}
	case domain.StepConfirmation:
		return map[string]any{domain.FieldConfirmed: extract.Confirmation(text)}
	}
	return map[string]any{}
}

// needsClarification only applies to steps whose extractors can fail.
func needsClarification(step domain.Step, delta map[string]any) bool {
	switch step {
	case domain.StepNoticePeriod:
		return delta[domain.FieldNoticePeriod] == domain.Unclear
	case domain.StepCompensation:
		return delta[domain.FieldCurrentCTC] == domain.Unclear && delta[domain.FieldExpectedCTC] == domain.Unclear
	case domain.StepAvailability:
		return delta[domain.FieldInterviewDate] == domain.Unclear
	}
	return false
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.TurnEvent), kind domain.EventType, step domain.Step, delta map[string]any, started time.Time) {
	if hook == nil {
		return
	}
	now := e.clock()
	hook(ctx, &domain.TurnEvent{
		Timestamp: now,
		Type:      kind,
		Step:      step,
		Extracted: maps.Clone(delta),
		Duration:  now.Sub(started),
	})
}
