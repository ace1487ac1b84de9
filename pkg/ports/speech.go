package ports

import (
	"context"
	"errors"
)

// ErrRecognizerClosed is reported when the input source is gone for good
// (for example stdin reached EOF). Retrying cannot help.
var ErrRecognizerClosed = errors.New("recognizer input closed")

// ErrSpeechUnavailable is returned by adapters whose backend is missing.
var ErrSpeechUnavailable = errors.New("speech capability unavailable")

// RecognitionHandler receives the outcome of a listening window.
// Callbacks may run on any goroutine.
type RecognitionHandler struct {
	OnResult func(text string)
	OnError  func(err error)
}

// Recognizer produces final utterances only; partial results never surface.
type Recognizer interface {
	// Start opens a listening window. It returns immediately; the outcome
	// arrives through the handler. At most one of OnResult or OnError fires
	// per window.
	Start() error

	// Stop closes the current window. It is a no-op when not listening.
	// Stop must not invoke the handler before returning.
	Stop()

	SetHandler(h RecognitionHandler)
}

// SpeechHooks are notified around each spoken text. Any field may be nil.
type SpeechHooks struct {
	OnStart func(text string)
	OnEnd   func(text string)
}

// Synthesizer speaks text aloud.
type Synthesizer interface {
	// Speak blocks until the text has been fully played, Cancel is called,
	// or ctx is done.
	Speak(ctx context.Context, text string) error

	// Cancel interrupts any playback in progress. Safe to call at any time.
	Cancel()

	SetHooks(h SpeechHooks)
}
