package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/screener/pkg/ports"
)

type inputResult struct {
	text string
	err  error
}

// ConsoleRecognizer treats each non-blank line read from its source as a
// final utterance. Lines typed while no window is open wait for the next one.
type ConsoleRecognizer struct {
	reader *bufio.Reader
	lines  chan inputResult
	once   sync.Once

	mu      sync.Mutex
	handler ports.RecognitionHandler
	window  chan struct{}
	pending *inputResult
	closed  bool
}

// NewConsoleRecognizer reads utterances from r.
func NewConsoleRecognizer(r io.Reader) *ConsoleRecognizer {
	return &ConsoleRecognizer{reader: bufio.NewReader(r)}
}

func (r *ConsoleRecognizer) SetHandler(h ports.RecognitionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = h
}

// Start opens a window. Starting an open window is a no-op.
func (r *ConsoleRecognizer) Start() error {
	r.once.Do(func() {
		r.lines = make(chan inputResult)
		go r.pump()
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ports.ErrRecognizerClosed
	}
	if r.window != nil {
		return nil
	}
	window := make(chan struct{})
	r.window = window
	go r.listen(window)
	return nil
}

// Stop closes the open window without notifying the handler.
func (r *ConsoleRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.window != nil {
		close(r.window)
		r.window = nil
	}
}

func (r *ConsoleRecognizer) pump() {
	for {
		text, err := r.reader.ReadString('\n')
		if text != "" {
			r.lines <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				r.lines <- inputResult{err: err}
			}
			close(r.lines)
			return
		}
	}
}

func (r *ConsoleRecognizer) listen(window chan struct{}) {
	for {
		in, ok := r.next(window)
		if !ok {
			return
		}

		r.mu.Lock()
		if r.window != window {
			// Closed while the line was in flight; keep it for the next window.
			r.pending = &in
			r.mu.Unlock()
			return
		}
		text := strings.TrimSpace(in.text)
		if in.err == nil && text == "" {
			r.mu.Unlock()
			continue
		}
		r.window = nil
		h := r.handler
		r.mu.Unlock()

		switch {
		case in.err != nil:
			if h.OnError != nil {
				h.OnError(in.err)
			}
		case h.OnResult != nil:
			h.OnResult(text)
		}
		return
	}
}

// next returns the pending line or waits for a new one. A false result
// means the window was closed.
func (r *ConsoleRecognizer) next(window chan struct{}) (inputResult, bool) {
	r.mu.Lock()
	if p := r.pending; p != nil {
		r.pending = nil
		r.mu.Unlock()
		return *p, true
	}
	r.mu.Unlock()

	select {
	case <-window:
		return inputResult{}, false
	case in, open := <-r.lines:
		if !open {
			r.mu.Lock()
			r.closed = true
			r.mu.Unlock()
			return inputResult{err: ports.ErrRecognizerClosed}, true
		}
		return in, true
	}
}

// ConsoleSynthesizer "speaks" by optionally printing the text and holding
// for as long as reading it aloud would take.
type ConsoleSynthesizer struct {
	out            io.Writer
	wordsPerMinute int

	mu     sync.Mutex
	hooks  ports.SpeechHooks
	cancel context.CancelFunc
}

// ConsoleOption configures a ConsoleSynthesizer.
type ConsoleOption func(*ConsoleSynthesizer)

// WithOutput prints every spoken text to w, prefixed like a transcript line.
func WithOutput(w io.Writer) ConsoleOption {
	return func(s *ConsoleSynthesizer) {
		s.out = w
	}
}

// WithWordsPerMinute paces Speak. Zero returns immediately.
func WithWordsPerMinute(wpm int) ConsoleOption {
	return func(s *ConsoleSynthesizer) {
		s.wordsPerMinute = wpm
	}
}

func NewConsoleSynthesizer(opts ...ConsoleOption) *ConsoleSynthesizer {
	s := &ConsoleSynthesizer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ConsoleSynthesizer) SetHooks(h ports.SpeechHooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

// Speak interrupts any previous playback, then plays text.
func (s *ConsoleSynthesizer) Speak(ctx context.Context, text string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	hooks := s.hooks
	s.mu.Unlock()

	if hooks.OnStart != nil {
		hooks.OnStart(text)
	}
	if s.out != nil {
		fmt.Fprintf(s.out, "Agent: %s\n", text)
	}

	var err error
	if d := SpeakingTime(text, s.wordsPerMinute); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			err = ctx.Err()
		}
	}

	if hooks.OnEnd != nil {
		hooks.OnEnd(text)
	}
	return err
}

func (s *ConsoleSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SpeakingTime estimates how long text takes to read aloud at wpm.
func SpeakingTime(text string, wpm int) time.Duration {
	if wpm <= 0 {
		return 0
	}
	words := len(strings.Fields(text))
	return time.Duration(words) * time.Minute / time.Duration(wpm)
}
