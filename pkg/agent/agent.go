package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/ports"
	"github.com/google/uuid"
)

// UpdateFunc observes agent state changes.
type UpdateFunc func(domain.Update)

// Fanout combines several observers into one. Nil entries are skipped.
func Fanout(fns ...UpdateFunc) UpdateFunc {
	return func(u domain.Update) {
		for _, fn := range fns {
			if fn != nil {
				fn(u)
			}
		}
	}
}

// Agent sequences speech output and input around a dialogue.Engine.
//
// Methods are safe to call from any goroutine, but SubmitUtterance is not
// meant to be called concurrently with itself: the turn order of two
// simultaneous utterances is undefined.
type Agent struct {
	recognizer  ports.Recognizer
	synthesizer ports.Synthesizer
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	engineOpts  []dialogue.Option
	listenDelay time.Duration
	retry       RetryPolicy
	maxInput    int

	mu        sync.Mutex
	engine    *dialogue.Engine
	sessionID string
	active    bool
	complete  bool
	listening bool
	failure   error
	failures  int

	// gen invalidates pending timers and speech whenever the session is
	// stopped, failed or reset.
	gen       uint64
	timer     *time.Timer
	session   context.Context
	cancel    context.CancelFunc
	stopWatch func() bool
	onUpdate  UpdateFunc
}

// New creates an idle agent for job. Nothing is spoken until Start.
func New(job domain.JobContext, recognizer ports.Recognizer, synthesizer ports.Synthesizer, opts ...Option) *Agent {
	a := &Agent{
		recognizer:  recognizer,
		synthesizer: synthesizer,
		listenDelay: DefaultListenDelay,
		retry:       DefaultRetryPolicy(),
		maxInput:    DefaultMaxUtterance,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a.engine = dialogue.New(job, a.engineOpts...)
	a.sessionID = uuid.NewString()

	recognizer.SetHandler(ports.RecognitionHandler{
		OnResult: a.recognized,
		OnError:  a.recognitionFailed,
	})
	return a
}

// OnUpdate registers the observer invoked after every state change,
// replacing any previous one. Use Fanout to notify several.
func (a *Agent) OnUpdate(fn UpdateFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = fn
}

// SessionID identifies the current conversation. It changes on Reset.
func (a *Agent) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}

// Snapshot returns the current state without an extracted delta.
func (a *Agent) Snapshot() domain.Update {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked(nil)
}

// Collected returns a copy of everything extracted so far.
func (a *Agent) Collected() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.State().CollectedData
}

// Start marks the session active and speaks the current prompt. It returns
// once the prompt has been spoken; listening opens after the listen delay.
// Cancelling ctx stops the session. Start is a no-op while active or once
// the conversation is complete.
func (a *Agent) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.active || a.engine.Complete() {
		a.mu.Unlock()
		return nil
	}
	a.active, a.complete = true, false
	a.failure, a.failures = nil, 0
	a.session, a.cancel = context.WithCancel(context.WithoutCancel(ctx))
	a.stopWatch = context.AfterFunc(ctx, a.Stop)
	prompt := a.engine.Begin()
	gen, id := a.gen, a.sessionID
	update := a.snapshotLocked(nil)
	a.mu.Unlock()

	a.logger.Info("screening started", "session", id)
	a.publish(update)
	return a.speak(ctx, gen, prompt)
}

// Stop cancels playback and listening and marks the session inactive and
// complete. It is safe to call at any time, any number of times.
func (a *Agent) Stop() {
	a.mu.Lock()
	running := a.active || a.listening
	a.haltLocked()
	if running {
		a.complete = true
	}
	update, id := a.snapshotLocked(nil), a.sessionID
	a.mu.Unlock()

	a.synthesizer.Cancel()
	if running {
		a.logger.Info("screening stopped", "session", id)
		a.publish(update)
	}
}

// Reset stops the session and starts over with a fresh engine. A nil job
// keeps the current job context.
func (a *Agent) Reset(job *domain.JobContext) {
	a.Stop()

	a.mu.Lock()
	next := a.engine.Job()
	if job != nil {
		next = *job
	}
	a.engine = dialogue.New(next, a.engineOpts...)
	a.sessionID = uuid.NewString()
	a.complete = false
	a.failure, a.failures = nil, 0
	update := a.snapshotLocked(nil)
	a.mu.Unlock()

	a.publish(update)
}

// SubmitUtterance feeds one utterance, recognized or typed, to the engine.
// Blank text and text arriving while the session is not active are ignored.
// Text that Sanitize rejects is returned as an error and leaves the turn open.
// Unless the conversation just completed, the next prompt is spoken before
// SubmitUtterance returns.
func (a *Agent) SubmitUtterance(ctx context.Context, text string) error {
	text, err := Sanitize(text, a.maxInput)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	a.mu.Lock()
	id := a.sessionID
	if !a.active || a.complete {
		a.mu.Unlock()
		a.logger.Debug("utterance ignored, session not active", "session", id)
		return nil
	}
	a.closeListeningLocked()

	res, err := a.engine.Process(ctx, text)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.failures = 0
	if res.Complete {
		a.haltLocked()
		a.complete = true
	}
	gen := a.gen
	update := a.snapshotLocked(res.Extracted)
	a.mu.Unlock()

	a.publish(update)
	if res.Complete {
		a.logger.Info("screening complete", "session", id)
		return nil
	}

	speech := res.NextPrompt
	if res.Clarification {
		speech = dialogue.ClarificationLine + " " + res.NextPrompt
	}
	return a.speak(ctx, gen, speech)
}

func (a *Agent) recognized(text string) {
	err := a.SubmitUtterance(context.Background(), text)
	if rejected(err) {
		a.recognitionFailed(err)
		return
	}
	if err != nil {
		a.logger.Error("failed to process utterance", "session", a.SessionID(), "error", err)
	}
}

func (a *Agent) recognitionFailed(err error) {
	a.mu.Lock()
	if !a.active || a.complete {
		a.mu.Unlock()
		return
	}
	id := a.sessionID
	a.closeListeningLocked()
	a.failures++
	attempt := a.failures
	fatal := errors.Is(err, ports.ErrRecognizerClosed) || !a.retry.Allows(attempt)
	if fatal {
		a.failure = err
		a.haltLocked()
	} else {
		a.scheduleListenLocked(a.retry.Delay(attempt))
	}
	update := a.snapshotLocked(nil)
	a.mu.Unlock()

	if fatal {
		a.logger.Error("recognition failed, giving up", "session", id, "attempt", attempt, "error", err)
	} else {
		a.logger.Warn("recognition failed, retrying", "session", id, "attempt", attempt, "error", err)
	}
	if a.hooks.OnRecognitionFailure != nil {
		a.hooks.OnRecognitionFailure(context.Background(), &domain.FailureEvent{
			Timestamp: time.Now(),
			Err:       err,
			Attempt:   attempt,
			Fatal:     fatal,
		})
	}
	a.publish(update)
}

// speak plays text and, if the session is still the one that asked for it,
// schedules listening.
func (a *Agent) speak(ctx context.Context, gen uint64, text string) error {
	a.mu.Lock()
	session, id := a.session, a.sessionID
	a.mu.Unlock()

	speakCtx, cancel := context.WithCancel(session)
	defer cancel()
	defer context.AfterFunc(ctx, cancel)()

	err := a.synthesizer.Speak(speakCtx, text)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Warn("speech output failed", "session", id, "error", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen || !a.active || a.complete {
		return nil
	}
	a.scheduleListenLocked(a.listenDelay)
	return nil
}

func (a *Agent) scheduleListenLocked(delay time.Duration) {
	if a.timer != nil {
		a.timer.Stop()
	}
	gen := a.gen
	a.timer = time.AfterFunc(delay, func() { a.listen(gen) })
}

func (a *Agent) listen(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || !a.active || a.complete || a.listening {
		a.mu.Unlock()
		return
	}
	a.listening = true
	update := a.snapshotLocked(nil)
	a.mu.Unlock()

	a.publish(update)
	if err := a.recognizer.Start(); err != nil {
		a.recognitionFailed(err)
		return
	}

	// A Stop that raced with Start must not leave a window open.
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		a.recognizer.Stop()
	}
}

// closeListeningLocked cancels a pending listen and closes an open window.
func (a *Agent) closeListeningLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.listening = false
	a.recognizer.Stop()
}

// haltLocked ends the session: nothing scheduled before this call may run.
func (a *Agent) haltLocked() {
	a.gen++
	a.closeListeningLocked()
	a.active = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
}

func (a *Agent) snapshotLocked(extracted map[string]any) domain.Update {
	state := a.engine.State()
	update := domain.Update{
		Transcript:    state.Transcript,
		Listening:     a.listening,
		ExtractedData: extracted,
		Completed:     a.complete,
		Step:          state.CurrentStep,
		Active:        a.active,
		Failed:        a.failure != nil,
	}
	if a.failure != nil {
		update.Error = a.failure.Error()
	}
	return update
}

func (a *Agent) publish(update domain.Update) {
	a.mu.Lock()
	fn := a.onUpdate
	a.mu.Unlock()
	if fn != nil {
		fn(update)
	}
}
