package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/muesli/termenv"
)

// Transcript prints conversation updates as they arrive. Only lines not
// yet printed are written, so it can be fed every Update.
type Transcript struct {
	out      io.Writer
	profile  termenv.Profile
	echoUser bool

	mu        sync.Mutex
	printed   int
	listening bool
	failed    bool
}

// TranscriptOption configures a Transcript.
type TranscriptOption func(*Transcript)

// WithUserEcho prints the candidate's lines too. Leave it off when the
// terminal already echoes typed input.
func WithUserEcho(echo bool) TranscriptOption {
	return func(t *Transcript) {
		t.echoUser = echo
	}
}

// WithProfile overrides the detected colour profile.
func WithProfile(p termenv.Profile) TranscriptOption {
	return func(t *Transcript) {
		t.profile = p
	}
}

func NewTranscript(out io.Writer, opts ...TranscriptOption) *Transcript {
	t := &Transcript{out: out, profile: termenv.EnvColorProfile()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render writes what changed since the previous update.
func (t *Transcript) Render(u domain.Update) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(u.Transcript) < t.printed {
		// Reset: a new conversation started.
		t.printed = 0
		t.failed = false
		fmt.Fprintln(t.out, t.styled("--- new conversation ---", "", true))
	}
	for _, line := range u.Transcript[t.printed:] {
		if out := t.line(line); out != "" {
			fmt.Fprintln(t.out, out)
		}
	}
	t.printed = len(u.Transcript)

	if u.Listening && !t.listening {
		fmt.Fprintln(t.out, t.styled("(listening...)", "", true))
	}
	t.listening = u.Listening

	if u.Failed && !t.failed {
		fmt.Fprintln(t.out, t.styled("Speech input failed: "+u.Error, "#f87171", false))
	}
	t.failed = u.Failed
}

func (t *Transcript) line(line string) string {
	switch {
	case strings.HasPrefix(line, string(domain.SpeakerAgent)+": "):
		return t.styled(line, "#a78bfa", false)
	case strings.HasPrefix(line, string(domain.SpeakerUser)+": "):
		if !t.echoUser {
			return ""
		}
		return t.styled(line, "#34d399", false)
	}
	return line
}

func (t *Transcript) styled(s, color string, faint bool) string {
	out := t.profile.String(s)
	if color != "" {
		out = out.Foreground(t.profile.Color(color))
	}
	if faint {
		out = out.Faint()
	}
	return out.String()
}
