package speech

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/screener/pkg/ports"
)

// NopRecognizer never hears anything. Input must come through
// Agent.SubmitUtterance.
type NopRecognizer struct {
	logger *slog.Logger
	warn   sync.Once
}

func NewNopRecognizer(logger *slog.Logger) *NopRecognizer {
	return &NopRecognizer{logger: logger}
}

func (r *NopRecognizer) Start() error {
	r.warn.Do(func() {
		if r.logger != nil {
			r.logger.Warn("speech recognition unavailable, waiting for typed input")
		}
	})
	return nil
}

func (r *NopRecognizer) Stop() {}

func (r *NopRecognizer) SetHandler(ports.RecognitionHandler) {}

// NopSynthesizer returns as soon as it is asked to speak.
type NopSynthesizer struct {
	logger *slog.Logger
	warn   sync.Once

	mu    sync.Mutex
	hooks ports.SpeechHooks
}

func NewNopSynthesizer(logger *slog.Logger) *NopSynthesizer {
	return &NopSynthesizer{logger: logger}
}

func (s *NopSynthesizer) Speak(ctx context.Context, text string) error {
	s.warn.Do(func() {
		if s.logger != nil {
			s.logger.Warn("speech synthesis unavailable, prompts are text only")
		}
	})

	s.mu.Lock()
	hooks := s.hooks
	s.mu.Unlock()
	if hooks.OnStart != nil {
		hooks.OnStart(text)
	}
	if hooks.OnEnd != nil {
		hooks.OnEnd(text)
	}
	return ctx.Err()
}

func (s *NopSynthesizer) Cancel() {}

func (s *NopSynthesizer) SetHooks(h ports.SpeechHooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}
