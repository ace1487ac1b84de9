package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/aretw0/screener/pkg/ports"
)

// ErrNoSpeech is reported when a listening window ends without any words.
var ErrNoSpeech = errors.New("no speech detected")

// Command is an external program and its fixed arguments.
type Command struct {
	Path string
	Args []string
}

// ParseCommand splits a command line on whitespace. Quoting is not supported.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	return Command{Path: fields[0], Args: fields[1:]}, nil
}

// Available reports whether the program can be found on PATH.
func (c Command) Available() bool {
	_, err := exec.LookPath(c.Path)
	return err == nil
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// CommandSynthesizer pipes each text to the standard input of a TTS program
// and waits for it to exit.
type CommandSynthesizer struct {
	cmd Command

	mu     sync.Mutex
	hooks  ports.SpeechHooks
	cancel context.CancelFunc
}

func NewCommandSynthesizer(cmd Command) *CommandSynthesizer {
	return &CommandSynthesizer{cmd: cmd}
}

func (s *CommandSynthesizer) SetHooks(h ports.SpeechHooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

func (s *CommandSynthesizer) Speak(ctx context.Context, text string) error {
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
	defer func() {
		if hooks.OnEnd != nil {
			hooks.OnEnd(text)
		}
	}()

	cmd := exec.CommandContext(ctx, s.cmd.Path, s.cmd.Args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", s.cmd.Path, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (s *CommandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// CommandRecognizer runs an STT program once per listening window. The
// program records the candidate and prints the transcript on stdout.
type CommandRecognizer struct {
	cmd Command

	mu      sync.Mutex
	handler ports.RecognitionHandler
	cancel  context.CancelFunc
}

func NewCommandRecognizer(cmd Command) *CommandRecognizer {
	return &CommandRecognizer{cmd: cmd}
}

func (r *CommandRecognizer) SetHandler(h ports.RecognitionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = h
}

func (r *CommandRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, r.cmd.Path, r.cmd.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("%s: %w", r.cmd.Path, err)
	}
	r.cancel = cancel

	go func() {
		err := cmd.Wait()

		r.mu.Lock()
		if ctx.Err() != nil {
			// Stopped; the outcome is discarded.
			r.mu.Unlock()
			return
		}
		r.cancel = nil
		h := r.handler
		r.mu.Unlock()
		cancel()

		text := strings.TrimSpace(stdout.String())
		switch {
		case err != nil:
			if h.OnError != nil {
				h.OnError(fmt.Errorf("%s: %w: %s", r.cmd.Path, err, strings.TrimSpace(stderr.String())))
			}
		case text == "":
			if h.OnError != nil {
				h.OnError(ErrNoSpeech)
			}
		case h.OnResult != nil:
			h.OnResult(text)
		}
	}()
	return nil
}

func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
