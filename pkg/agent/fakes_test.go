package agent_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/ports"
)

type fakeRecognizer struct {
	mu        sync.Mutex
	handler   ports.RecognitionHandler
	listening bool
	startErr  error
	starts    chan struct{}
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{starts: make(chan struct{}, 64)}
}

func (r *fakeRecognizer) Start() error {
	r.mu.Lock()
	r.listening = true
	err := r.startErr
	r.mu.Unlock()
	r.starts <- struct{}{}
	return err
}

func (r *fakeRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = false
}

func (r *fakeRecognizer) SetHandler(h ports.RecognitionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = h
}

func (r *fakeRecognizer) isListening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

func (r *fakeRecognizer) say(text string) {
	r.mu.Lock()
	h := r.handler
	r.mu.Unlock()
	h.OnResult(text)
}

func (r *fakeRecognizer) fail(err error) {
	r.mu.Lock()
	h := r.handler
	r.mu.Unlock()
	h.OnError(err)
}

func (r *fakeRecognizer) waitStart(t *testing.T) {
	t.Helper()
	select {
	case <-r.starts:
	case <-time.After(time.Second):
		t.Fatal("recognizer was not started")
	}
}

func (r *fakeRecognizer) assertNoStart(t *testing.T) {
	t.Helper()
	select {
	case <-r.starts:
		t.Fatal("recognizer started unexpectedly")
	case <-time.After(30 * time.Millisecond):
	}
}

type fakeSynthesizer struct {
	mu       sync.Mutex
	spoken   []string
	block    bool
	cancels  int
	speaking chan string
}

func newFakeSynthesizer() *fakeSynthesizer {
	return &fakeSynthesizer{speaking: make(chan string, 64)}
}

func (s *fakeSynthesizer) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	block := s.block
	s.mu.Unlock()

	s.speaking <- text
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (s *fakeSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
}

func (s *fakeSynthesizer) SetHooks(ports.SpeechHooks) {}

func (s *fakeSynthesizer) said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

type recorder struct {
	mu      sync.Mutex
	updates []domain.Update
}

func (r *recorder) record(u domain.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

func (r *recorder) last() domain.Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.updates) == 0 {
		return domain.Update{}
	}
	return r.updates[len(r.updates)-1]
}
