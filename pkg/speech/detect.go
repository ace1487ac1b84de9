package speech

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/screener/pkg/ports"
	"golang.org/x/term"
)

// Modes accepted by Detect.
const (
	ModeAuto    = "auto"
	ModeConsole = "console"
	ModeCommand = "command"
	ModeNone    = "none"
)

// Config selects and configures the speech adapters.
type Config struct {
	Mode           string
	TTSCommand     string
	STTCommand     string
	WordsPerMinute int

	// Input and Output default to os.Stdin and nothing.
	Input  io.Reader
	Output io.Writer
}

// Capabilities describes what Detect settled on.
type Capabilities struct {
	Recognition string
	Synthesis   string
	// Interactive is true when input comes from a terminal.
	Interactive bool
}

// Detect builds the recognizer and synthesizer for cfg. In auto mode an
// external command is used when configured and found on PATH, and the
// console otherwise. The conversation never requires speech: console and
// nop adapters keep it usable through typed text.
func Detect(cfg Config, logger *slog.Logger) (ports.Recognizer, ports.Synthesizer, Capabilities, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	input := cfg.Input
	if input == nil {
		input = os.Stdin
	}
	caps := Capabilities{Interactive: IsInteractive(input)}

	consoleSynth := func() ports.Synthesizer {
		opts := []ConsoleOption{WithWordsPerMinute(cfg.WordsPerMinute)}
		if cfg.Output != nil {
			opts = append(opts, WithOutput(cfg.Output))
		}
		caps.Synthesis = ModeConsole
		return NewConsoleSynthesizer(opts...)
	}
	consoleRec := func() ports.Recognizer {
		caps.Recognition = ModeConsole
		return NewConsoleRecognizer(input)
	}

	switch cfg.Mode {
	case ModeNone:
		caps.Recognition, caps.Synthesis = ModeNone, ModeNone
		return NewNopRecognizer(logger), NewNopSynthesizer(logger), caps, nil

	case ModeConsole:
		return consoleRec(), consoleSynth(), caps, nil

	case ModeCommand:
		tts, err := requireCommand("tts", cfg.TTSCommand)
		if err != nil {
			return nil, nil, caps, err
		}
		stt, err := requireCommand("stt", cfg.STTCommand)
		if err != nil {
			return nil, nil, caps, err
		}
		caps.Recognition, caps.Synthesis = ModeCommand, ModeCommand
		return NewCommandRecognizer(stt), NewCommandSynthesizer(tts), caps, nil

	case ModeAuto, "":
		var rec ports.Recognizer
		var synth ports.Synthesizer
		if cmd, ok := lookup(cfg.STTCommand); ok {
			rec = NewCommandRecognizer(cmd)
			caps.Recognition = ModeCommand
		} else {
			if cfg.STTCommand != "" {
				logger.Warn("stt command not found, falling back to typed input", "command", cfg.STTCommand)
			}
			rec = consoleRec()
		}
		if cmd, ok := lookup(cfg.TTSCommand); ok {
			synth = NewCommandSynthesizer(cmd)
			caps.Synthesis = ModeCommand
		} else {
			if cfg.TTSCommand != "" {
				logger.Warn("tts command not found, falling back to text prompts", "command", cfg.TTSCommand)
			}
			synth = consoleSynth()
		}
		return rec, synth, caps, nil
	}
	return nil, nil, caps, fmt.Errorf("unknown speech mode %q", cfg.Mode)
}

func requireCommand(kind, line string) (Command, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return Command{}, fmt.Errorf("%s command: %w", kind, ports.ErrSpeechUnavailable)
	}
	if !cmd.Available() {
		return Command{}, fmt.Errorf("%s command %q: %w", kind, cmd.Path, ports.ErrSpeechUnavailable)
	}
	return cmd, nil
}

func lookup(line string) (Command, bool) {
	cmd, err := ParseCommand(line)
	if err != nil || !cmd.Available() {
		return Command{}, false
	}
	return cmd, true
}

// IsInteractive reports whether r is a terminal.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
